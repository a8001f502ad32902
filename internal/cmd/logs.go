package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <container>",
	Short: "Show container logs",
	Long: `Stream logs for one container.

Examples:
  # Print the container's log history
  dockronos logs web

  # Follow log output until interrupted
  dockronos logs -f web`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

var logsFollow bool

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	stream, err := app.engine.Logs(cmd.Context(), args[0], logsFollow)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	_, err = io.Copy(os.Stdout, stream)
	return err
}
