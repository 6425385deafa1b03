// Package cli wires the eduguide command line: flags, configuration, and
// the interactive chat loop.
package cli

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command; running it without a subcommand
// starts the chat loop.
var rootCmd = &cobra.Command{
	Use:   "eduguide",
	Short: "EduGuide - study-abroad chat assistant with session memory",
	Long: `EduGuide is an interactive study-abroad assistant. It remembers your
name, preferred study destination, and course of interest across sessions
and keeps the conversation focused on education topics.`,
	Version:      version,
	RunE:         runChat,
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eduguide/eduguide.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}
