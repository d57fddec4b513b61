package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/trainingdesk/brochure-cli/internal/pipeline"
)

var batchOutput string

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every brochure in a directory and export a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initProcessor(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Processor.ProcessDir(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := batchOutput
		if out == "" {
			out = cfg.Batch.OutputPath
		}
		if err := pipeline.ExportWorkbook(result.Contracts, out); err != nil {
			return err
		}

		zap.L().Info("batch: workbook written",
			zap.String("path", out),
			zap.Int("contracts", len(result.Contracts)),
			zap.Strings("failed", result.Failed),
		)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "workbook output path (default from config)")
	rootCmd.AddCommand(batchCmd)
}
