package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AthenaLink/dockronos/internal/depgraph"
	"github.com/AthenaLink/dockronos/internal/observer"
)

var healthCmd = &cobra.Command{
	Use:   "health [service...]",
	Short: "Check service health",
	Long: `Check the health of configured services on demand. With no arguments,
every configured service is checked. Exits non-zero if any checked
service is unhealthy or missing.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	services := args
	if len(services) == 0 {
		for _, svc := range app.cfg.Services {
			services = append(services, svc.Name)
		}
		sort.Strings(services)
	}
	if len(services) == 0 {
		return fmt.Errorf("no services configured and none named")
	}

	unhealthy := 0
	for _, service := range services {
		report := app.starter.CheckServiceHealth(cmd.Context(), service)
		fmt.Println(observer.RenderHealthReport(service, report))
		if report.Status != depgraph.HealthHealthy {
			unhealthy++
		}
	}

	if unhealthy > 0 {
		return fmt.Errorf("%d of %d service(s) not healthy", unhealthy, len(services))
	}
	return nil
}
