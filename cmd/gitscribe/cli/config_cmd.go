package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/ai"
	"github.com/hoanghonghuy/gitscribe/internal/app"
	"github.com/hoanghonghuy/gitscribe/internal/chooser"
	"github.com/hoanghonghuy/gitscribe/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the configuration file interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	if !chooser.Interactive() {
		return chooser.ErrUnavailable
	}
	_, fc, path, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	updated, saved, err := app.EditConfig(cmd.Context(), fc, ai.Default().Names())
	if err != nil {
		return err
	}
	if !saved {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil
	}
	if err := config.Save(updated, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
	return nil
}
