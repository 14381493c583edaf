package cli

import (
	"fmt"

	"github.com/Kayanski/launchpad/internal/core/minter"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", minter.ContractName, minter.ContractVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
