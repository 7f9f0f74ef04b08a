// Package cli wires the deafcheck cobra commands.
package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "deafcheck",
		Short:         "Validate web content for Deaf-first accessibility",
		Long:          "Deafcheck scores web pages against Deaf-first accessibility heuristics: visual clarity, ASL compatibility, audio independence, and navigation logic.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newResultCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
