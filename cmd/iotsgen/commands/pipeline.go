package commands

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotsgen/iotsgen/internal/codegen"
	"github.com/iotsgen/iotsgen/internal/config"
	"github.com/iotsgen/iotsgen/internal/diagnostic"
	"github.com/iotsgen/iotsgen/internal/scope"
	"github.com/iotsgen/iotsgen/internal/snapshot"
	"github.com/iotsgen/iotsgen/internal/version"
)

// genFlags holds the flag values shared by generate, watch, and inspect.
type genFlags struct {
	configPath    string
	entries       []string
	followImports bool
	newtypes      bool
	keepNumbered  bool

	output       string
	noHeader     bool
	manifestPath string
}

// addScopeFlags registers the flags that shape what gets collected and
// how newtypes are treated.
func addScopeFlags(cmd *cobra.Command, f *genFlags) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to iotsgen.json")
	cmd.Flags().StringArrayVar(&f.entries, "entry", nil, "Entry file name or glob (repeatable; overrides config fileNames)")
	cmd.Flags().BoolVar(&f.followImports, "follow-imports", false, "Include files reachable through imports")
	cmd.Flags().BoolVar(&f.newtypes, "newtypes", false, "Emit branded newtype scaffolds for primitive aliases")
	cmd.Flags().BoolVar(&f.keepNumbered, "keep-numbered", false, "Keep numbered duplicate declarations instead of collapsing them")
}

// addOutputFlags registers the flags that shape where and how the
// document is written.
func addOutputFlags(cmd *cobra.Command, f *genFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.noHeader, "no-header", false, "Omit the import header")
	cmd.Flags().StringVar(&f.manifestPath, "manifest", "", "Write a run manifest to this path")
}

// effectiveConfig resolves the run configuration: defaults, then the
// config file when given, then explicit flag overrides.
func (f *genFlags) effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		for _, w := range cfg.ValidateDetailed().Warnings {
			zap.S().Warnf("config: %s", w)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("follow-imports") {
		cfg.FollowImports = f.followImports
	}
	if flags.Changed("no-header") {
		cfg.IncludeHeader = !f.noHeader
	}
	if flags.Changed("newtypes") && f.newtypes {
		cfg.NewtypeMode = config.NewtypeModeAll
	}
	if flags.Changed("keep-numbered") && f.keepNumbered {
		cfg.DeduplicateNewtypes = false
	}
	if len(f.entries) > 0 {
		cfg.FileNames = f.entries
	}
	return &cfg, nil
}

// codegenOptions converts the validated config into renderer options.
func codegenOptions(cfg *config.Config) codegen.Options {
	return codegen.Options{
		IncludeHeader:       cfg.IncludeHeader,
		NewtypeMode:         codegen.NewtypeMode(cfg.NewtypeMode),
		DeduplicateNewtypes: cfg.DeduplicateNewtypes,
	}
}

// loadSnapshot reads path, or stdin when path is "-".
func loadSnapshot(path string) (*scope.Snapshot, error) {
	if path == "-" {
		return snapshot.Read(os.Stdin, snapshot.FormatJSON)
	}
	return snapshot.Load(path)
}

// displayPath names a snapshot argument in logs and manifests.
func displayPath(path string) string {
	if path == "-" {
		return "(stdin)"
	}
	return path
}

// runGeneration loads one snapshot and renders it.
func runGeneration(path string, cfg *config.Config) (*codegen.Result, *diagnostic.Collector, error) {
	snap, err := loadSnapshot(path)
	if err != nil {
		return nil, nil, err
	}
	set := scope.Collect(snap, scope.Options{
		Entries:       cfg.FileNames,
		FollowImports: cfg.FollowImports,
	})
	zap.S().Debugw("collected scope",
		"snapshot", displayPath(path),
		"declarations", set.Len())

	diags := diagnostic.NewCollector(false, false)
	res := codegen.Generate(set, codegenOptions(cfg), diags)
	return res, diags, nil
}

// reportDiagnostics logs every finding at its severity. Info findings
// surface only under --verbose.
func reportDiagnostics(diags *diagnostic.Collector) {
	for _, d := range diags.Diagnostics() {
		fields := []any{"category", string(d.Category)}
		if d.File != "" {
			fields = append(fields, "file", d.File)
		}
		if d.Decl != "" {
			fields = append(fields, "decl", d.Decl)
		}
		if d.Hint != "" {
			fields = append(fields, "hint", d.Hint)
		}
		switch d.Severity {
		case diagnostic.SeverityError:
			zap.S().Errorw(d.Message, fields...)
		case diagnostic.SeverityWarning:
			zap.S().Warnw(d.Message, fields...)
		default:
			zap.S().Debugw(d.Message, fields...)
		}
	}
}

// writeResult writes the rendered document, and the manifest when
// requested, for one snapshot run.
func writeResult(out io.Writer, f *genFlags, snapshotName string, res *codegen.Result, diags *diagnostic.Collector) error {
	text := res.Source + "\n"
	if f.output != "" {
		if err := os.WriteFile(f.output, []byte(text), 0o644); err != nil {
			return errors.Wrapf(err, "writing output %q", f.output)
		}
		zap.S().Infow("wrote codecs",
			"path", f.output,
			"declarations", len(res.Decls),
			"newtypes", res.Newtypes,
			"failed", len(res.Failed()))
	} else if _, err := io.WriteString(out, text); err != nil {
		return err
	}

	if f.manifestPath != "" {
		m := codegen.BuildManifest(res, diags, "iotsgen "+version.Version, snapshotName, f.output)
		data, err := m.JSON()
		if err != nil {
			return errors.Wrap(err, "encoding manifest")
		}
		if err := os.WriteFile(f.manifestPath, append(data, '\n'), 0o644); err != nil {
			return errors.Wrapf(err, "writing manifest %q", f.manifestPath)
		}
		zap.S().Infow("wrote manifest", "path", f.manifestPath)
	}
	return nil
}
