package commands

import (
	"fmt"

	"meal-scheduler/internal/schedule"

	"github.com/spf13/cobra"
)

var SuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask for recipe suggestions",
}

var suggestBudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Suggest a recipe that fits a time budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")
		if minutes <= 0 {
			return fmt.Errorf("--minutes must be positive")
		}

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ingredients := a.Food().Names(cmd.Context())
		suggestion := a.Engine().SuggestRecipeForBudget(cmd.Context(), minutes, ingredients)
		if suggestion == "" {
			return fmt.Errorf("no suggestion available, see the log for details")
		}
		fmt.Fprintln(cmd.OutOrStdout(), suggestion)
		return nil
	},
}

var suggestMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Suggest four meal times for a day around its classes",
	RunE: func(cmd *cobra.Command, args []string) error {
		dayFlag, _ := cmd.Flags().GetString("day")
		day := schedule.ParseDay(dayFlag)
		if !day.Known() {
			return fmt.Errorf("--day must be a weekday name, got %q", dayFlag)
		}

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Engine().Reload(cmd.Context()); err != nil {
			return err
		}
		ingredients := a.Food().Names(cmd.Context())
		suggestion := a.Engine().SuggestMeals(cmd.Context(), day, ingredients)
		if suggestion == "" {
			return fmt.Errorf("no suggestion available, see the log for details")
		}
		fmt.Fprintln(cmd.OutOrStdout(), suggestion)
		return nil
	},
}

func init() {
	suggestBudgetCmd.Flags().Int("minutes", 30, "time available in minutes")
	suggestMealsCmd.Flags().String("day", "", "weekday")
	suggestMealsCmd.MarkFlagRequired("day")

	SuggestCmd.AddCommand(suggestBudgetCmd)
	SuggestCmd.AddCommand(suggestMealsCmd)
}
