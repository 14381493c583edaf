package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "launchpadd",
	Short: "launchpadd - open-edition minting controller daemon",
	Long: `launchpadd runs a time-windowed, fee-splitting open-edition minting
controller. It exposes a public JSON-RPC listener for purchases and queries,
an admin listener for operator overrides, and a WebSocket stream of completed
mints. All durable state lives in a local key-value store; an optional SQL
history records every completed mint.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}
