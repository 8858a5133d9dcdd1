package cli

import (
	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/app"
)

var installHookCmd = &cobra.Command{
	Use:   "install-hook",
	Short: "Install a prepare-commit-msg hook that runs gitscribe commit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.InstallHook(cmd.Context(), repoArg, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(installHookCmd)
}
