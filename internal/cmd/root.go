package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AthenaLink/dockronos/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "dockronos",
	Short: "Container lifecycle and dependency orchestration",
	Long: `Dockronos manages local container environments through docker or podman,
validating lifecycle actions against each container's current state and
starting services in dependency order with health gating.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/dockronos/config.yaml)")
	rootCmd.PersistentFlags().String("runtime", "", "container runtime to use (auto, docker, podman)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("runtime.preference", rootCmd.PersistentFlags().Lookup("runtime"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/dockronos")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DOCKRONOS")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DOCKRONOS_RUNTIME_PREFERENCE for runtime.preference
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
