package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"meal-scheduler/internal/app"
	"meal-scheduler/internal/config"
	"meal-scheduler/internal/schedule"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvFile is set by the --env-file persistent flag.
var EnvFile string

// BindFlag binds a flag to a configuration key so that an explicitly set
// flag wins over the environment.
func BindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", flag.Name, err))
	}
}

func loadConfig() (*config.Config, error) {
	if EnvFile != "" {
		if err := config.LoadEnvFile(EnvFile); err != nil {
			return nil, err
		}
	}
	return config.NewFromViper(viper.GetViper())
}

func openApp(ctx context.Context) (*app.App, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}

func printEntries(out io.Writer, entries []schedule.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDAY\tSTART\tEND\tCLASS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Day, e.Start, e.End, e.Label)
	}
	w.Flush()
}
