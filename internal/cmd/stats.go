package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AthenaLink/dockronos/internal/event"
	"github.com/AthenaLink/dockronos/internal/observer"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show container resource usage",
	Long:  `Display one row of CPU, memory, and I/O usage per running container.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	rows, err := app.engine.Stats(cmd.Context())
	if err != nil {
		return err
	}
	app.hub.Emit(event.TypeMetricsUpdated, rows, event.PriorityNormal)

	if len(rows) == 0 {
		fmt.Println("No running containers")
		return nil
	}

	fmt.Print(observer.RenderStatsTable(rows))
	return nil
}
