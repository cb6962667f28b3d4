package main

import (
	"fmt"
	"os"

	"github.com/auroraeye/internal/cli/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "auroraeye",
	Short: "AuroraEye - an aurora borealis visibility tracker",
	Long: `AuroraEye checks geomagnetic activity (KP index) at your saved
locations and emails you a digest when conditions are favorable for
viewing the northern lights. Run it from cron for unattended alerts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(commands.NewConfigureCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewTestEmailCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
