package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deaffirst/deafcheck/internal/domain"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.BatchWorkers)
	assert.Equal(t, int64(5<<20), cfg.MaxContentBytes)
	assert.Equal(t, 30*time.Second, cfg.JobTimeout.Std())
	assert.Equal(t, 70.0, cfg.PassThreshold)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.EngineConfig)
	}{
		{"zero workers", func(c *domain.EngineConfig) { c.BatchWorkers = 0 }},
		{"zero size cap", func(c *domain.EngineConfig) { c.MaxContentBytes = 0 }},
		{"negative job timeout", func(c *domain.EngineConfig) { c.JobTimeout = -1 }},
		{"threshold above 100", func(c *domain.EngineConfig) { c.PassThreshold = 101 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var cfg domain.EngineConfig
	err := yaml.Unmarshal([]byte("job_timeout: 45s\nfetch_timeout: 1m30s\n"), &cfg)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.JobTimeout.Std())
	assert.Equal(t, 90*time.Second, cfg.FetchTimeout.Std())

	err = yaml.Unmarshal([]byte("job_timeout: notaduration\n"), &cfg)
	assert.Error(t, err)
}

func TestTenantPolicy_AllowsHost(t *testing.T) {
	policy := domain.TenantPolicy{AllowedDomains: []string{"example.com", "deaf.org"}}

	assert.True(t, policy.AllowsHost("example.com"))
	assert.True(t, policy.AllowsHost("www.example.com"), "subdomains match by registrable domain")
	assert.True(t, policy.AllowsHost("media.deaf.org"))
	assert.False(t, policy.AllowsHost("example.net"))
	assert.False(t, policy.AllowsHost("notexample.com"))
}

func TestTenantPolicy_EmptyAllowlistAllowsAll(t *testing.T) {
	assert.True(t, domain.TenantPolicy{}.AllowsHost("anything.example"))
}

func TestPolicyFor(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Tenants = map[string]domain.TenantPolicy{
		"acme": {AllowedDomains: []string{"acme.com"}, MaxBatchSize: 3},
	}

	acme := cfg.PolicyFor("acme")
	assert.Equal(t, 3, acme.MaxBatchSize)

	// Unknown and empty tenants are unrestricted.
	assert.Empty(t, cfg.PolicyFor("other").AllowedDomains)
	assert.Empty(t, cfg.PolicyFor("").AllowedDomains)
}
