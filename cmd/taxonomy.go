package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trainingdesk/brochure-cli/internal/classify"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy [file.xlsx]",
	Short: "Validate the category taxonomy workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Classify.TaxonomyPath
		if len(args) == 1 {
			path = args[0]
		}

		categories, err := classify.LoadTaxonomy(path)
		if err != nil {
			return err
		}

		byDomain := map[string]int{}
		for _, c := range categories {
			byDomain[c.Domain]++
		}

		fmt.Printf("%s: %d categories\n", path, len(categories))
		for domain, n := range byDomain {
			fmt.Printf("  %-12s %d\n", domain, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}
