package main

import (
	"github.com/spf13/cobra"

	docxh5p "github.com/gmixoulis/docx-to-h5p"
)

var buildCmd = &cobra.Command{
	Use:   "build [intermediate-dir]",
	Short: "Package intermediate question records into .h5p archives",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opts.WorkDir = args[0]
		}
		sum, err := docxh5p.New(opts).BuildAll(cmd.Context())
		if err != nil {
			return err
		}
		report(sum)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&flagSkipTranslations, "skip-translations", false,
		"build packages without language overlays")
}
