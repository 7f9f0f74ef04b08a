// Package fetcher implements the engine's ContentSource: fetch-by-URL
// over HTTP with size and time bounds, or pure in-memory parsing for
// raw-HTML targets.
package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/htmlparse"
	"github.com/deaffirst/deafcheck/internal/domain"
)

const userAgent = "deafcheck/1.0 (+https://github.com/deaffirst/deafcheck)"

// Source fetches and parses validation targets. URL targets go through a
// shared HTTP client; raw-HTML targets never touch the network.
type Source struct {
	client   *http.Client
	parser   *htmlparse.Parser
	maxBytes int64
}

// New builds a Source with the given default fetch timeout, dial timeout,
// and content size cap. Per-call FetchOptions can tighten both.
func New(timeout, dialTimeout time.Duration, maxBytes int64) *Source {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Source{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		parser:   htmlparse.New(),
		maxBytes: maxBytes,
	}
}

// Fetch implements domain.ContentSource.
func (s *Source) Fetch(ctx context.Context, target domain.Target, opts domain.FetchOptions) (*domain.ParsedContent, error) {
	if target.Kind == domain.TargetKindRawHTML {
		return s.parser.Extract(strings.NewReader(target.HTML), "text/html; charset=utf-8", "")
	}
	return s.fetchURL(ctx, target.URL, opts)
}

func (s *Source) fetchURL(ctx context.Context, rawURL string, opts domain.FetchOptions) (*domain.ParsedContent, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &domain.FetchError{Kind: domain.FetchDNS, Detail: fmt.Sprintf("invalid url %q", rawURL)}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.FetchError{Kind: domain.FetchDNS, Detail: err.Error()}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &domain.FetchError{
			Kind:   domain.FetchHTTPStatus,
			Detail: fmt.Sprintf("http status %d", resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, _ := mime.ParseMediaType(contentType); mediaType != "" &&
		!strings.Contains(mediaType, "text/html") && !strings.Contains(mediaType, "application/xhtml+xml") {
		// Servers omitting the header still get parsed; declared non-HTML
		// payloads do not.
		return nil, &domain.ParseError{Detail: fmt.Sprintf("unsupported content type %q", mediaType)}
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &domain.ParseError{Detail: fmt.Sprintf("gzip: %v", err)}
		}
		defer gz.Close()
		body = gz
	}

	limit := s.maxBytes
	if opts.MaxBytes > 0 && opts.MaxBytes < limit {
		limit = opts.MaxBytes
	}

	// Read one byte past the limit so oversized payloads are rejected
	// before a full parse, bounding memory.
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(data)) > limit {
		return nil, &domain.FetchError{
			Kind:   domain.FetchTooLarge,
			Detail: fmt.Sprintf("content exceeds %d byte limit", limit),
		}
	}

	return s.parser.Extract(strings.NewReader(string(data)), contentType, resp.Request.URL.String())
}

// classifyTransportError maps Go transport failures onto the engine's
// fetch error kinds.
func classifyTransportError(err error) error {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return &domain.FetchError{Kind: domain.FetchDNS, Detail: dnsErr.Error()}
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return &domain.FetchError{Kind: domain.FetchTimeout, Detail: err.Error()}
	default:
		return &domain.FetchError{Kind: domain.FetchDNS, Detail: err.Error()}
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
