package cli

import "github.com/spf13/cobra"

// Execute runs the gameon command tree.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gameon",
		Short:         "Chess game backend and terminal play",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newPlayCmd())
	return root
}
