package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tomat application
var rootCmd = &cobra.Command{
	Use:   "tomat",
	Short: "Web service and dashboard for the Shockwave Discord bot",
	Long: `tomat serves the Shockwave product site and dashboard.

It logs users in through the Discord OAuth authorization-code flow,
lists the servers where they hold the Administrator permission, and
renders the dashboard with per-server management entry points.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tomat version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
