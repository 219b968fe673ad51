package main

import (
	"github.com/spf13/cobra"

	docxh5p "github.com/gmixoulis/docx-to-h5p"
)

var extractCmd = &cobra.Command{
	Use:   "extract [docs-dir]",
	Short: "Extract question records from DOCX documents",
	Long: `Extract reads every .docx document in the input directory and writes
typed question records, plus any embedded images, into the intermediate
per-activity tree. The tree can be inspected or hand-edited before
packaging with "build".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			opts.InputDir = args[0]
		}
		sum, err := docxh5p.New(opts).ExtractAll(cmd.Context())
		if err != nil {
			return err
		}
		report(sum)
		return nil
	},
}
