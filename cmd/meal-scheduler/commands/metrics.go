package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var MetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Inspect text generation usage",
}

var metricsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show daily token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		usage, err := a.Metrics().GetDailyUsage(cmd.Context(), days)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DATE\tCALLS\tPROMPT\tCOMPLETION")
		for _, u := range usage {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", u.Date, u.TotalExecution, u.TotalPrompt, u.TotalCompletion)
		}
		w.Flush()
		return nil
	},
}

var metricsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete usage records older than N days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.Metrics().Cleanup(cmd.Context(), days)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records\n", removed)
		return nil
	},
}

func init() {
	metricsUsageCmd.Flags().Int("days", 7, "number of days to report")
	metricsCleanupCmd.Flags().Int("days", 30, "keep records newer than this many days")

	MetricsCmd.AddCommand(metricsUsageCmd)
	MetricsCmd.AddCommand(metricsCleanupCmd)
}
