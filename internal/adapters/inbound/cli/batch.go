package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/tui"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func newBatchCmd() *cobra.Command {
	var (
		urlsFile   string
		baseline   bool
		tenant     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "batch [url...]",
		Short: "Validate many pages concurrently",
		Long:  "Validate a list of URLs (arguments, or one per line with --urls) through a bounded worker pool. One page failing never aborts the rest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := args
			if urlsFile != "" {
				fromFile, err := readURLList(urlsFile)
				if err != nil {
					return err
				}
				urls = append(urls, fromFile...)
			}
			if len(urls) == 0 {
				return fmt.Errorf("at least one URL argument or --urls is required")
			}

			reqs := make([]domain.ValidationRequest, 0, len(urls))
			for _, u := range urls {
				reqs = append(reqs, domain.ValidationRequest{
					Target:        domain.TargetURL(u),
					DeafFirstMode: !baseline,
					Tenant:        tenant,
				})
			}

			cfg, err := loadConfig(".")
			if err != nil {
				return err
			}
			svc := newService(".", cfg)

			batch, err := svc.ValidateBatch(cmd.Context(), reqs)
			if err != nil {
				return fmt.Errorf("batch validation failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, batch)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBatch(batch))
			return nil
		},
	}

	cmd.Flags().StringVar(&urlsFile, "urls", "", "File with one URL per line")
	cmd.Flags().BoolVar(&baseline, "baseline", false, "Run only the baseline checks")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant key for configured domain policies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the batch result as JSON")

	return cmd
}

func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
