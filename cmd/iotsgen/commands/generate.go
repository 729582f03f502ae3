package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var generateFlags genFlags

// GenerateCmd represents the generate command.
var GenerateCmd = &cobra.Command{
	Use:   "generate [snapshot...]",
	Short: "Generate io-ts codec source from scope snapshots",
	Long: `Generate reads one or more scope snapshots (JSON or YAML) and prints
the io-ts codec document for the declarations they contain.

With no arguments it reads a JSON snapshot from stdin; "-" does the same
explicitly. Declarations that cannot be rendered become one-line error
markers and are reported on stderr; the run itself still succeeds.

Examples:
  iotsgen generate api.snapshot.json
  iotsgen generate api.snapshot.json -o src/codecs.ts --manifest run.json
  iotsgen generate --entry 'models/**' --follow-imports api.snapshot.json
  scope-dump | iotsgen generate --newtypes`,
	RunE: runGenerate,
}

func init() {
	addScopeFlags(GenerateCmd, &generateFlags)
	addOutputFlags(GenerateCmd, &generateFlags)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generateFlags.effectiveConfig(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	if len(args) > 1 && (generateFlags.output != "" || generateFlags.manifestPath != "") {
		return errors.New("--output and --manifest require a single snapshot")
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		res, diags, err := runGeneration(path, cfg)
		if err != nil {
			return err
		}
		reportDiagnostics(diags)

		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := writeResult(out, &generateFlags, displayPath(path), res, diags); err != nil {
			return err
		}
	}
	return nil
}
