package main

import (
	"fmt"
	"os"

	"meal-scheduler/cmd/meal-scheduler/commands"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meal-scheduler",
	Short: "Weekly class schedule with meal suggestions for the idle gaps",
	Long: `meal-scheduler keeps a weekly class schedule, finds the idle gaps
between classes and suggests meals to fill them from the food items
detected in your kitchen.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ScheduleCmd)
	rootCmd.AddCommand(commands.SuggestCmd)
	rootCmd.AddCommand(commands.MetricsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.EnvFile, "env-file", "", "dotenv file to load (default is ./.env when present)")
	rootCmd.PersistentFlags().String("database", "", "SQLite database path (overrides DATABASE_PATH)")
	commands.BindFlag("database_path", rootCmd.PersistentFlags().Lookup("database"))
}
