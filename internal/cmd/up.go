package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up [service...]",
	Short: "Start services with their dependencies",
	Long: `Start the named services and everything they depend on, in dependency
order. Each service must report healthy (or survive its grace period)
before its dependents are started. With no arguments, every configured
service is brought up.

Examples:
  # Start the web service and its whole dependency chain
  dockronos up web

  # Bring up everything declared in the configuration
  dockronos up`,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
}

func runUp(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	roots := args
	if len(roots) == 0 {
		for _, svc := range app.cfg.Services {
			roots = append(roots, svc.Name)
		}
		sort.Strings(roots)
	}
	if len(roots) == 0 {
		return fmt.Errorf("no services configured; declare services in %s or name one explicitly", "config.yaml")
	}

	for _, root := range roots {
		result, err := app.starter.StartWithDependencies(cmd.Context(), root)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d service(s) started\n", root, result.StartedCount)
	}
	return nil
}
