package cli

import (
	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/app"
)

var commitApply bool

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message from staged changes",
	Args:  cobra.NoArgs,
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().BoolVar(&commitApply, "apply", false, "review the message, then run git commit")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, app.CommandCommit)
	if err != nil {
		return err
	}
	cfg.Apply = commitApply
	return newApp(cfg).Run(cmd.Context(), cfg)
}
