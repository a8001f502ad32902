package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <container> <command>...",
	Short: "Run a command inside a running container",
	Long: `Run a command inside a running container and print its output.

Examples:
  dockronos exec web ls /app
  dockronos exec db psql -U postgres -c "select 1"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	out, err := app.engine.Exec(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
