package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pine",
	Short: "Work with pinecone-encoded binary data",
	Long: `pine encodes, decodes and inspects data in the pinecone wire
format, using a YAML or JSONC schema file to describe the shape.

The format is not self-describing: the schema must match what the
producer used, or the output is garbage.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			if l, err := zap.NewDevelopment(); err == nil {
				logger = l
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
