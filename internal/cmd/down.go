package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/depgraph"
	"github.com/AthenaLink/dockronos/internal/lifecycle"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop all configured services",
	Long: `Stop every running configured service in reverse dependency order, so
dependents go down before the services they rely on.`,
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
}

func runDown(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	if len(app.cfg.Services) == 0 {
		return fmt.Errorf("no services configured")
	}

	if err := app.refresh(cmd.Context()); err != nil {
		return err
	}

	graph := depgraph.Build(app.cfg.Services)
	order, err := graph.FullOrder()
	if err != nil {
		return err
	}

	stopped := 0
	for i := len(order) - 1; i >= 0; i-- {
		name := order[i]
		record, ok := app.manager.Get(name)
		if !ok || record.Status != container.StatusRunning {
			continue
		}
		if err := runAction(cmd.Context(), app, name, lifecycle.ActionStop); err != nil {
			return err
		}
		stopped++
	}

	fmt.Printf("%d service(s) stopped\n", stopped)
	return nil
}
