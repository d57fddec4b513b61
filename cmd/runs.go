package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trainingdesk/brochure-cli/internal/model"
	"github.com/trainingdesk/brochure-cli/internal/store"
)

var (
	runsStatus string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded document runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		fmt.Printf("%-36s  %-10s  %-20s  %s\n", "ID", "STATUS", "CREATED", "FILE")
		for _, r := range runs {
			fmt.Printf("%-36s  %-10s  %-20s  %s\n",
				r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04:05"), r.File)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by run status")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}
