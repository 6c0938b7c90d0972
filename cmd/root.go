package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Companion tool for managing card catalogs and decks",
	Long: `Lantern is a command-line companion for a card game: it normalizes and
indexes a raw card catalog, searches it with structured filters, and checks
decks against their investigator's deck-building rules.`,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.AddCommand(catalogCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(deckCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(showCmd)
}

// newLogger builds the logger the I/O layers report through. Quiet by
// default; --verbose switches to the development config.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
