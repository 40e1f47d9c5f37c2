package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// plansCmd represents the plans command
var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the membership plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := planStore.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load plans: %w", err)
		}

		plans := planStore.Plans()
		if len(plans) == 0 {
			fmt.Println("No plans on offer.")
			return nil
		}

		for _, plan := range plans {
			fmt.Printf("• %s: $%.2f for %d days\n", plan.Name, plan.Price, plan.DurationDays)
			if plan.Description != "" {
				fmt.Printf("  %s\n", plan.Description)
			}
		}
		return nil
	},
}
