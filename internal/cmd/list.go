package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AthenaLink/dockronos/internal/container"
	"github.com/AthenaLink/dockronos/internal/observer"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "ps"},
	Short:   "List containers and their states",
	Long: `List all containers known to the active runtime, running or not,
with their normalized lifecycle state, image, ports, and health.`,
	RunE: runList,
}

var listRunning bool

func init() {
	listCmd.Flags().BoolVar(&listRunning, "running", false, "Only show running containers")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.refresh(cmd.Context()); err != nil {
		return err
	}

	records := app.manager.List()
	if listRunning {
		var running []container.Record
		for _, r := range records {
			if r.Status == container.StatusRunning {
				running = append(running, r)
			}
		}
		records = running
	}

	if len(records) == 0 {
		fmt.Println("No containers found")
		return nil
	}

	fmt.Print(observer.RenderContainerTable(records))
	return nil
}
