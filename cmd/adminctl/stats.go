package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}

	headerColor.Println("Dashboard")
	fmt.Printf("Users:          %d\n", stats.TotalUsers)
	fmt.Printf("Products:       %d\n", stats.TotalProducts)
	fmt.Printf("Total stock:    %d\n", stats.TotalStock)
	fmt.Printf("Revenue:        $%.2f\n", stats.Revenue)
	fmt.Printf("Average rating: %.2f\n", stats.AverageRating)

	if len(stats.PriceBuckets) > 0 {
		headerColor.Println("\nPrice distribution")
		for _, b := range stats.PriceBuckets {
			fmt.Printf("%-14s %d\n", b.Label, b.Count)
		}
	}
	return nil
}
