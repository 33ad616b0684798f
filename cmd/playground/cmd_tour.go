package main

import (
	"mongoplay/internal/playground/tour"

	"github.com/spf13/cobra"
)

var tourCmd = &cobra.Command{
	Use:   "tour [section...]",
	Short: "Print the Go language tour",
	Long: `Tour prints variables, conditions, looping, aggregations, oop and features
in that order, or only the named sections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tour.Run(cmd.OutOrStdout(), args...)
	},
}
