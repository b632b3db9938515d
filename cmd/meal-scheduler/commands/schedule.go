package commands

import (
	"fmt"
	"os"

	"meal-scheduler/internal/app"
	"meal-scheduler/internal/schedule"

	"github.com/spf13/cobra"
)

var ScheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"s"},
	Short:   "Manage the weekly class schedule",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the ordered schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("day")

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Engine().Reload(cmd.Context()); err != nil {
			return err
		}
		var d schedule.Day
		if day != "" {
			d = schedule.ParseDay(day)
		}
		printEntries(cmd.OutOrStdout(), a.Engine().Entries(d))
		return nil
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a class to the schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		class, _ := cmd.Flags().GetString("class")
		day, _ := cmd.Flags().GetString("day")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")

		entry, err := schedule.ParseEntry(class, day, start, end)
		if err != nil {
			return err
		}

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.Engine().Create(cmd.Context(), entry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var scheduleDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a class from the schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Engine().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var scheduleImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import classes from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ids, err := app.ImportSchedule(cmd.Context(), a.Engine(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", len(ids))
		return nil
	},
}

var scheduleFillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Suggest meals for the idle gaps of a day",
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
		printEntries(cmd.OutOrStdout(), a.Engine().FillDay(cmd.Context(), day, ingredients))
		return nil
	},
}

func init() {
	scheduleListCmd.Flags().String("day", "", "only show this day")

	scheduleAddCmd.Flags().String("class", "", "class name")
	scheduleAddCmd.Flags().String("day", "", "weekday")
	scheduleAddCmd.Flags().String("start", "", "start time (HH:MM)")
	scheduleAddCmd.Flags().String("end", "", "end time (HH:MM)")
	for _, name := range []string{"class", "day", "start", "end"} {
		scheduleAddCmd.MarkFlagRequired(name)
	}

	scheduleFillCmd.Flags().String("day", "", "weekday to fill")
	scheduleFillCmd.MarkFlagRequired("day")

	ScheduleCmd.AddCommand(scheduleListCmd)
	ScheduleCmd.AddCommand(scheduleAddCmd)
	ScheduleCmd.AddCommand(scheduleDeleteCmd)
	ScheduleCmd.AddCommand(scheduleImportCmd)
	ScheduleCmd.AddCommand(scheduleFillCmd)
}
