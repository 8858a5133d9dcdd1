package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/ai"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List installed providers in priority order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range ai.Default().ListAvailable() {
			fmt.Fprintln(cmd.OutOrStdout(), p.Name())
		}
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models <provider>",
	Short: "List the models a provider offers",
	Long:  "Lists the provider's model catalog, one per line. Providers without a catalog print \"" + ai.ModelPlaceholder + "\".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := ai.Default().Lookup(args[0])
		if err != nil {
			return err
		}
		for m := range p.ListModels(cmd.Context()) {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd, modelsCmd)
}
