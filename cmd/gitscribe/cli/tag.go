package cli

import (
	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/gitscribe/internal/app"
)

var (
	tagFrom   string
	tagCreate string
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Generate release notes from the commits since the last tag",
	Args:  cobra.NoArgs,
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().StringVar(&tagFrom, "from", "", "start after this revision instead of the latest tag")
	tagCmd.Flags().StringVar(&tagCreate, "create", "", "create an annotated tag with the notes as its message")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, app.CommandTag)
	if err != nil {
		return err
	}
	cfg.From = tagFrom
	cfg.CreateTag = tagCreate
	return newApp(cfg).Run(cmd.Context(), cfg)
}
