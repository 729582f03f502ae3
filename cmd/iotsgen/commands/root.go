// Package commands wires the iotsgen command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iotsgen/iotsgen/internal/logger"
)

var (
	verbose bool
	logJSON bool
)

// RootCmd is the iotsgen entry command.
var RootCmd = &cobra.Command{
	Use:   "iotsgen",
	Short: "Generate io-ts codecs from TypeScript scope snapshots",
	Long: `iotsgen turns a serialized TypeScript scope snapshot into io-ts
runtime validator source text.

Available commands:
  generate - Generate codec source from a snapshot
  inspect  - Show collected declarations, ordering, and newtype results
  watch    - Regenerate whenever watched snapshots change
  version  - Show version information

Examples:
  iotsgen generate api.snapshot.json > codecs.ts
  iotsgen generate api.snapshot.json -o codecs.ts --newtypes
  iotsgen inspect api.snapshot.json --json
  iotsgen watch api.snapshot.json -o codecs.ts --debounce 500ms`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(verbose, logJSON)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(InspectCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(VersionCmd)
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	defer logger.Sync()
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "iotsgen:", err)
		return 1
	}
	return 0
}
