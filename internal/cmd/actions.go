package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AthenaLink/dockronos/internal/lifecycle"
)

// roundTo trims durations for display.
const roundTo = time.Millisecond

var startCmd = &cobra.Command{
	Use:   "start <container>...",
	Short: "Start containers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  actionRunner(lifecycle.ActionStart),
}

var stopCmd = &cobra.Command{
	Use:   "stop <container>...",
	Short: "Stop running containers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  actionRunner(lifecycle.ActionStop),
}

var restartCmd = &cobra.Command{
	Use:   "restart <container>...",
	Short: "Restart running containers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  actionRunner(lifecycle.ActionRestart),
}

var pauseCmd = &cobra.Command{
	Use:   "pause <container>...",
	Short: "Freeze a running container's processes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  actionRunner(lifecycle.ActionPause),
}

var unpauseCmd = &cobra.Command{
	Use:   "unpause <container>...",
	Short: "Resume paused containers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  actionRunner(lifecycle.ActionUnpause),
}

var removeCmd = &cobra.Command{
	Use:     "remove <container>...",
	Aliases: []string{"rm"},
	Short:   "Remove stopped containers",
	Args:    cobra.MinimumNArgs(1),
	RunE:    actionRunner(lifecycle.ActionRemove),
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd, restartCmd, pauseCmd, unpauseCmd, removeCmd)
}

// actionRunner builds a RunE that validates and executes one lifecycle
// action per named container, stopping at the first failure.
func actionRunner(action lifecycle.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.refresh(cmd.Context()); err != nil {
			return err
		}

		for _, target := range args {
			if err := runAction(cmd.Context(), app, target, action); err != nil {
				return err
			}
		}
		return nil
	}
}

func runAction(ctx context.Context, app *app, target string, action lifecycle.Action) error {
	result, err := app.executor.Execute(ctx, lifecycle.Request{Target: target, Action: action})
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s)\n", result.Action, result.Container, result.Duration.Round(roundTo))
	return nil
}
