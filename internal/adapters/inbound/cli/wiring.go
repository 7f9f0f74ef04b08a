package cli

import (
	"fmt"
	"time"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/config"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/enrich"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/fetcher"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/store"
	"github.com/deaffirst/deafcheck/internal/application"
	"github.com/deaffirst/deafcheck/internal/domain"
)

const dialTimeout = 5 * time.Second

func loadConfig(dir string) (domain.EngineConfig, error) {
	cfg, err := config.New().Load(dir)
	if err != nil {
		return domain.EngineConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newService builds the validation engine. Results are persisted under
// dir so later `deafcheck result` calls can find them.
func newService(dir string, cfg domain.EngineConfig) *application.ValidateService {
	source := fetcher.New(cfg.FetchTimeout.Std(), dialTimeout, cfg.MaxContentBytes)
	results := store.NewFile(dir)
	return application.NewValidateService(source, results, enrich.FromEnv(), cfg)
}
