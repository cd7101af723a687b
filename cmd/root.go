package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gworkspace application
var rootCmd = &cobra.Command{
	Use:   "gworkspace",
	Short: "MCP server exposing Gmail, Google Calendar, and Google Chat to AI agents",
	Long: `gworkspace is an MCP (Model Context Protocol) server that gives AI
assistants access to Gmail, Google Calendar, and Google Chat.

It provides tools for searching and sending email, managing calendar events
(including projecting recurring events into concrete occurrences within a
time window), and reading and posting Google Chat messages.`,
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
	rootCmd.SetVersionTemplate(`{{printf "gworkspace version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
