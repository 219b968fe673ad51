package main

import (
	"github.com/spf13/cobra"

	docxh5p "github.com/gmixoulis/docx-to-h5p"
)

var runCmd = &cobra.Command{
	Use:   "run [docs-dir]",
	Short: "Extract and package in one pass",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opts.InputDir = args[0]
		}
		sum, err := docxh5p.New(opts).Run(cmd.Context())
		if err != nil {
			return err
		}
		report(sum)
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&flagSkipTranslations, "skip-translations", false,
		"build packages without language overlays")
}
