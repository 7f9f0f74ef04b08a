package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Duration wraps time.Duration with YAML support for values like "30s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the underlying time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// EngineConfig holds the engine-level knobs loaded from .deafcheck.yaml.
// It is passed explicitly into job construction; there is no ambient
// global configuration.
type EngineConfig struct {
	FetchTimeout       Duration                `yaml:"fetch_timeout"`
	JobTimeout         Duration                `yaml:"job_timeout"`
	BatchTimeout       Duration                `yaml:"batch_timeout"`
	BatchWorkers       int                     `yaml:"batch_workers"`
	MaxContentBytes    int64                   `yaml:"max_content_bytes"`
	TopRecommendations int                     `yaml:"top_recommendations"`
	PassThreshold      float64                 `yaml:"pass_threshold"`
	Tenants            map[string]TenantPolicy `yaml:"tenants"`
}

// TenantPolicy restricts what a tenant may validate. An empty domain
// allowlist allows every domain.
type TenantPolicy struct {
	AllowedDomains  []string `yaml:"allowed_domains"`
	MaxContentBytes int64    `yaml:"max_content_bytes"`
	MaxBatchSize    int      `yaml:"max_batch_size"`
}

// AllowsHost reports whether the policy admits the given hostname.
// Matching is by registrable domain (eTLD+1), so an allowlist entry
// "example.com" also admits "www.example.com".
func (p TenantPolicy) AllowsHost(host string) bool {
	if len(p.AllowedDomains) == 0 {
		return true
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host))
	if err != nil {
		registrable = strings.ToLower(host)
	}
	for _, allowed := range p.AllowedDomains {
		if registrable == strings.ToLower(strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}

// DefaultConfig returns the engine defaults used when no .deafcheck.yaml
// exists.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		FetchTimeout:       Duration(15 * time.Second),
		JobTimeout:         Duration(30 * time.Second),
		BatchTimeout:       Duration(2 * time.Minute),
		BatchWorkers:       10,
		MaxContentBytes:    5 << 20,
		TopRecommendations: 5,
		PassThreshold:      70,
	}
}

// Validate catches nonsensical values before they reach job construction.
func (c EngineConfig) Validate() error {
	if c.BatchWorkers < 1 {
		return fmt.Errorf("batch_workers must be >= 1, got %d", c.BatchWorkers)
	}
	if c.MaxContentBytes < 1 {
		return fmt.Errorf("max_content_bytes must be positive, got %d", c.MaxContentBytes)
	}
	if c.FetchTimeout <= 0 || c.JobTimeout <= 0 || c.BatchTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.PassThreshold < 0 || c.PassThreshold > 100 {
		return fmt.Errorf("pass_threshold must be in [0,100], got %g", c.PassThreshold)
	}
	if c.TopRecommendations < 0 {
		return fmt.Errorf("top_recommendations must be >= 0, got %d", c.TopRecommendations)
	}
	return nil
}

// PolicyFor resolves the tenant policy for an opaque tenant key. Unknown
// or empty tenants get an unrestricted policy.
func (c EngineConfig) PolicyFor(tenant string) TenantPolicy {
	if tenant == "" {
		return TenantPolicy{}
	}
	if p, ok := c.Tenants[tenant]; ok {
		return p
	}
	return TenantPolicy{}
}
