package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/tui"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func newResultCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "result <id>",
		Short: "Show a previously stored validation result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(".")
			if err != nil {
				return err
			}
			svc := newService(".", cfg)

			result, err := svc.GetResult(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("no result with id %s", args[0])
				}
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	return cmd
}
