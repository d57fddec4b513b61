package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/pipeline"
)

var processOutput string

var processCmd = &cobra.Command{
	Use:   "process <file.pdf>",
	Short: "Extract the contract from a single brochure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initProcessor(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		contract, err := env.Processor.Process(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if processOutput != "" {
			return pipeline.ExportWorkbook([]*model.Contract{contract}, processOutput)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(contract)
	},
}

func init() {
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "write the contract to an xlsx workbook instead of stdout")
	rootCmd.AddCommand(processCmd)
}
