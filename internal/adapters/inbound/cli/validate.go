package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/history"
	"github.com/deaffirst/deafcheck/internal/adapters/outbound/tui"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		htmlFile   string
		baseline   bool
		tenant     string
		jsonOutput bool
		ciMode     bool
		minScore   float64
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "validate [url]",
		Short: "Validate one page for Deaf-first accessibility",
		Long:  "Fetch a URL (or read raw HTML with --file) and score it across visual clarity, ASL compatibility, audio independence, and navigation logic.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveTarget(args, htmlFile)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(".")
			if err != nil {
				return err
			}
			if timeout > 0 {
				cfg.JobTimeout = domain.Duration(timeout)
			}
			svc := newService(".", cfg)

			result, err := svc.Validate(cmd.Context(), domain.ValidationRequest{
				Target:        target,
				DeafFirstMode: !baseline,
				Tenant:        tenant,
			})
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			// Best-effort local history so score movement is visible
			// across runs.
			_ = history.New().Save(".", domain.ScoreEntry{
				Timestamp:    time.Now().Format(time.RFC3339),
				TargetKey:    result.Target.Key(),
				OverallScore: result.OverallScore,
				Passed:       result.Passed,
				Status:       result.Status,
			})

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			}

			if result.Status == domain.StatusFailed {
				return fmt.Errorf("validation did not complete: %s", result.ErrorReason)
			}
			if ciMode && result.OverallScore < minScore {
				return fmt.Errorf("score %.0f is below minimum %.0f", result.OverallScore, minScore)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "file", "", "Validate raw HTML from a file instead of fetching a URL")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "Run only the baseline checks (visual clarity and navigation logic)")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant key for configured domain policies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Minimum overall score for CI mode")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override the job timeout")

	return cmd
}

func resolveTarget(args []string, htmlFile string) (domain.Target, error) {
	if htmlFile != "" {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return domain.Target{}, fmt.Errorf("reading %s: %w", htmlFile, err)
		}
		return domain.TargetRawHTML(string(data)), nil
	}
	if len(args) == 0 {
		return domain.Target{}, fmt.Errorf("a URL argument or --file is required")
	}
	return domain.TargetURL(args[0]), nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
