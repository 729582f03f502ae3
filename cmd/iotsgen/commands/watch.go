package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotsgen/iotsgen/internal/runcache"
	"github.com/iotsgen/iotsgen/internal/watcher"
)

var (
	watchFlags    genFlags
	watchDebounce time.Duration
)

// WatchCmd represents the watch command.
var WatchCmd = &cobra.Command{
	Use:   "watch snapshot...",
	Short: "Regenerate whenever watched snapshots change",
	Long: `Watch generates once, then regenerates every time one of the snapshot
files changes. Changes arriving close together are coalesced into a
single run, and saves that leave every snapshot's content unchanged are
skipped.

A failing regeneration is logged and the watch continues; fix the
snapshot and save again.

Examples:
  iotsgen watch api.snapshot.json -o src/codecs.ts
  iotsgen watch api.snapshot.json --newtypes --debounce 500ms`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	addScopeFlags(WatchCmd, &watchFlags)
	addOutputFlags(WatchCmd, &watchFlags)
	WatchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Delay after the last change before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := watchFlags.effectiveConfig(cmd)
	if err != nil {
		return err
	}

	// Options are fixed for the session. Their digest ties the recorded
	// state to the options the outputs were generated under.
	var optionsHash string
	if data, err := json.Marshal(cfg); err == nil {
		optionsHash = runcache.HashBytes(data)
	}
	var outputs []string
	if watchFlags.output != "" {
		outputs = append(outputs, watchFlags.output)
	}
	if watchFlags.manifestPath != "" {
		outputs = append(outputs, watchFlags.manifestPath)
	}

	out := cmd.OutOrStdout()
	var state *runcache.State
	regenerate := func() {
		digests := runcache.HashFiles(args)
		if state.Fresh(optionsHash, digests) {
			zap.S().Debugw("snapshot content unchanged, skipping", "files", args)
			return
		}
		ok := true
		for _, path := range args {
			res, diags, err := runGeneration(path, cfg)
			if err != nil {
				zap.S().Errorw("generation failed", "snapshot", path, "error", err)
				ok = false
				continue
			}
			reportDiagnostics(diags)
			if err := writeResult(out, &watchFlags, path, res, diags); err != nil {
				zap.S().Errorw("write failed", "snapshot", path, "error", err)
				ok = false
			}
		}
		// Record state only for complete runs so a failed path is
		// retried on the next event.
		if ok {
			state = runcache.New(optionsHash, digests, outputs)
		}
	}

	regenerate()

	w, err := watcher.New(args, watchDebounce, func(paths []string) {
		zap.S().Infow("change detected", "files", paths)
		regenerate()
	})
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zap.S().Infow("watching", "files", args, "debounce", watchDebounce.String())
	<-ctx.Done()
	zap.S().Info("stopping")
	return nil
}
