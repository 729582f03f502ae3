package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotsgen/iotsgen/internal/codegen"
	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/snapshot"
)

var (
	inspectFlags    genFlags
	inspectJSON     bool
	inspectValidate bool
)

// InspectCmd represents the inspect command.
var InspectCmd = &cobra.Command{
	Use:   "inspect [snapshot...]",
	Short: "Show collected declarations and emission order",
	Long: `Inspect prints what a generation run would do without generating:
the collected declarations with their classification, references,
emission order, and newtype decisions.

With --validate the snapshot is first checked against the wire-format
JSON Schema. With --json the inspection is printed as JSON.

Examples:
  iotsgen inspect api.snapshot.json
  iotsgen inspect api.snapshot.json --validate
  iotsgen inspect api.snapshot.json --json --newtypes`,
	RunE: runInspect,
}

func init() {
	addScopeFlags(InspectCmd, &inspectFlags)
	InspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the inspection as JSON")
	InspectCmd.Flags().BoolVar(&inspectValidate, "validate", false, "Check the snapshot against the wire-format schema first")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := inspectFlags.effectiveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		data, format, err := readSnapshotBytes(path)
		if err != nil {
			return err
		}

		if inspectValidate {
			if err := snapshot.Validate(data, format); err != nil {
				return errors.Wrapf(err, "snapshot %s failed schema validation", displayPath(path))
			}
			zap.S().Infow("snapshot matches the wire-format schema", "snapshot", displayPath(path))
		}

		snap, err := snapshot.Read(bytes.NewReader(data), format)
		if err != nil {
			return err
		}
		set := scope.Collect(snap, scope.Options{
			Entries:       cfg.FileNames,
			FollowImports: cfg.FollowImports,
		})
		plan := codegen.BuildPlan(set, codegenOptions(cfg))

		if i > 0 {
			fmt.Fprintln(out)
		}
		if inspectJSON {
			enc, err := json.Marshal(plan, jsontext.WithIndent("  "))
			if err != nil {
				return errors.Wrap(err, "encoding inspection")
			}
			fmt.Fprintln(out, string(enc))
		} else {
			fmt.Fprint(out, plan.Format())
		}
	}
	return nil
}

// readSnapshotBytes returns the raw snapshot document and its detected
// format. Stdin is always treated as JSON.
func readSnapshotBytes(path string) ([]byte, snapshot.Format, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, snapshot.FormatJSON, errors.Wrap(err, "reading stdin")
		}
		return data, snapshot.FormatJSON, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, snapshot.FormatJSON, errors.Wrapf(err, "reading snapshot %q", path)
	}
	return data, snapshot.DetectFormat(path), nil
}
