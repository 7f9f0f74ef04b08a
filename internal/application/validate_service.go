// Package application orchestrates validation jobs: content acquisition,
// concurrent checker execution, aggregation, and result persistence.
package application

import (
	"context"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deaffirst/deafcheck/internal/domain"
	"github.com/deaffirst/deafcheck/internal/domain/checks"
)

// ValidateService is the job manager. It owns no long-lived state beyond
// its wiring; every call is an independent job with a fresh id, and the
// same target submitted twice produces two results.
type ValidateService struct {
	source   domain.ContentSource
	store    domain.ResultStore
	enricher domain.Enricher
	cfg      domain.EngineConfig
}

// NewValidateService wires a job manager. enricher may be nil.
func NewValidateService(
	source domain.ContentSource,
	store domain.ResultStore,
	enricher domain.Enricher,
	cfg domain.EngineConfig,
) *ValidateService {
	return &ValidateService{
		source:   source,
		store:    store,
		enricher: enricher,
		cfg:      cfg,
	}
}

// Validate runs one validation job to a terminal status. The returned
// result is always non-nil and already persisted; job-level failures are
// reported in the result, not as an error.
func (s *ValidateService) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResult, error) {
	result := &domain.ValidationResult{
		ID:         uuid.NewString(),
		Target:     req.Target,
		CreatedAt:  time.Now().UTC(),
		Status:     domain.StatusPending,
		ASLUnknown: true,
	}

	policy := s.cfg.PolicyFor(req.Tenant)
	if req.Target.Kind == domain.TargetKindURL {
		if host := hostOf(req.Target.URL); host != "" && !policy.AllowsHost(host) {
			return s.finalizeFailed(ctx, result, domain.ReasonTenantDenied)
		}
	}

	jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout.Std())
	defer cancel()

	content, err := s.source.Fetch(jobCtx, req.Target, domain.FetchOptions{
		Timeout:  s.cfg.FetchTimeout.Std(),
		MaxBytes: policy.MaxContentBytes,
	})
	if err != nil {
		reason := err.Error()
		if jobCtx.Err() != nil {
			reason = domain.ReasonJobTimeout
		}
		return s.finalizeFailed(ctx, result, reason)
	}

	checkers := checks.Registry(s.enricher)
	if !req.DeafFirstMode {
		checkers = checks.Baseline(s.enricher)
	}

	result.Breakdown = s.runCheckers(jobCtx, checkers, content)

	completed := result.CompletedResults()
	if len(completed) == 0 {
		reason := domain.ReasonNoCheckersCompleted
		if jobCtx.Err() != nil {
			reason = domain.ReasonJobTimeout
		}
		return s.finalizeFailed(ctx, result, reason)
	}

	agg := checks.Aggregate(completed, s.cfg.TopRecommendations)
	result.OverallScore = agg.OverallScore
	result.ASLCompatible = agg.ASLCompatible
	result.ASLUnknown = agg.ASLUnknown
	result.Recommendations = agg.Recommendations
	result.Passed = agg.OverallScore >= s.cfg.PassThreshold

	result.Status = domain.StatusCompleted
	if len(completed) < len(checkers) {
		result.Status = domain.StatusPartial
	}

	return s.persist(ctx, result)
}

// runCheckers executes every checker concurrently and collects whatever
// finishes before the job deadline. A checker that panics or is cut off
// is recorded as not completed; its siblings are unaffected.
func (s *ValidateService) runCheckers(ctx context.Context, checkers []domain.Checker, content *domain.ParsedContent) map[domain.Category]*domain.CheckerResult {
	breakdown := make(map[domain.Category]*domain.CheckerResult, len(checkers))
	for _, checker := range checkers {
		breakdown[checker.Category()] = &domain.CheckerResult{
			Category:  checker.Category(),
			Completed: false,
		}
	}

	type outcome struct {
		result domain.CheckerResult
	}
	results := make(chan outcome, len(checkers))

	var wg sync.WaitGroup
	for _, checker := range checkers {
		wg.Add(1)
		go func(c domain.Checker) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					fault := &domain.CheckerFault{Category: c.Category(), Cause: r}
					log.Printf("deafcheck: %v", fault)
					results <- outcome{result: domain.CheckerResult{
						Category:  c.Category(),
						Completed: false,
					}}
				}
			}()
			results <- outcome{result: c.Analyze(ctx, content)}
		}(checker)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for {
		select {
		case out, ok := <-results:
			if !ok {
				return breakdown
			}
			res := out.result
			breakdown[res.Category] = &res
		case <-ctx.Done():
			// Whatever has not reported by now stays not-completed.
			return breakdown
		}
	}
}

// ValidateBatch validates every request through a bounded worker pool.
// Per-target failures never abort siblings; the batch deadline marks
// still-pending jobs failed rather than dropping them.
func (s *ValidateService) ValidateBatch(ctx context.Context, reqs []domain.ValidationRequest) (*domain.BatchValidationResult, error) {
	batch := &domain.BatchValidationResult{
		Status:  domain.BatchCompleted,
		Results: make(map[string]*domain.ValidationResult, len(reqs)),
		Errors:  make(map[string]string),
	}
	if len(reqs) == 0 {
		return batch, nil
	}

	batchCtx, cancel := context.WithTimeout(ctx, s.cfg.BatchTimeout.Std())
	defer cancel()

	type entry struct {
		key    string
		result *domain.ValidationResult
		err    string
	}
	entries := make(chan entry, len(reqs))
	sem := make(chan struct{}, s.cfg.BatchWorkers)

	var wg sync.WaitGroup
	for _, req := range reqs {
		key := req.Target.Key()

		if policy := s.cfg.PolicyFor(req.Tenant); policy.MaxBatchSize > 0 && len(reqs) > policy.MaxBatchSize {
			entries <- entry{key: key, err: "batch size exceeds tenant limit"}
			continue
		}

		wg.Add(1)
		go func(req domain.ValidationRequest, key string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-batchCtx.Done():
				entries <- entry{key: key, result: s.timedOutResult(ctx, req)}
				return
			}

			result, err := s.Validate(batchCtx, req)
			if err != nil {
				log.Printf("deafcheck: batch target %s: %v", key, err)
				entries <- entry{key: key, err: err.Error()}
				return
			}
			if batchCtx.Err() != nil && result.Status == domain.StatusFailed && result.ErrorReason == domain.ReasonJobTimeout {
				result.ErrorReason = domain.ReasonBatchTimeout
			}
			entries <- entry{key: key, result: result}
		}(req, key)
	}

	wg.Wait()
	close(entries)

	for e := range entries {
		if e.err != "" {
			batch.Errors[e.key] = e.err
			continue
		}
		batch.Results[e.key] = e.result
	}

	for _, result := range batch.Results {
		if result.Status != domain.StatusCompleted {
			batch.Status = domain.BatchPartial
			break
		}
	}
	if len(batch.Errors) > 0 {
		batch.Status = domain.BatchPartial
	}

	return batch, nil
}

// GetResult reads a stored result by id. domain.ErrNotFound for unknown
// ids is a normal outcome.
func (s *ValidateService) GetResult(ctx context.Context, id string) (*domain.ValidationResult, error) {
	return s.store.Get(ctx, id)
}

// timedOutResult records a job the batch deadline cut off before it
// could start.
func (s *ValidateService) timedOutResult(ctx context.Context, req domain.ValidationRequest) *domain.ValidationResult {
	result := &domain.ValidationResult{
		ID:          uuid.NewString(),
		Target:      req.Target,
		CreatedAt:   time.Now().UTC(),
		Status:      domain.StatusFailed,
		ErrorReason: domain.ReasonBatchTimeout,
		ASLUnknown:  true,
	}
	s.mustPersist(ctx, result)
	return result
}

func (s *ValidateService) finalizeFailed(ctx context.Context, result *domain.ValidationResult, reason string) (*domain.ValidationResult, error) {
	result.Status = domain.StatusFailed
	result.ErrorReason = reason
	return s.persist(ctx, result)
}

// persist writes the finalized result exactly once. The write survives
// the job deadline: a timed-out job still leaves its failed result
// behind for later retrieval.
func (s *ValidateService) persist(ctx context.Context, result *domain.ValidationResult) (*domain.ValidationResult, error) {
	if err := s.store.Put(context.WithoutCancel(ctx), result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ValidateService) mustPersist(ctx context.Context, result *domain.ValidationResult) {
	if err := s.store.Put(context.WithoutCancel(ctx), result); err != nil {
		log.Printf("deafcheck: persisting result %s: %v", result.ID, err)
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
