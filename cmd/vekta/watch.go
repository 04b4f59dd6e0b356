package main

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vekta/internal/cli"
	"github.com/hyperjump/vekta/internal/fileid"
	"github.com/hyperjump/vekta/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var syncExisting bool
	cmd := &cobra.Command{
		Use:   "watch [dir ...]",
		Short: "Re-vectorize files as they change",
		Long: `Watch directories (from arguments or watch.directories in the config) and
print one JSON line per changed or removed file until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				dirs = a.cfg.Watch.Directories
			}
			if len(dirs) == 0 {
				return errors.New("no directories to watch: pass them as arguments or set watch.directories")
			}
			w := newFileWatcher(a, dirs, cmd.OutOrStdout())
			if err := w.Start(cmd.Context()); err != nil {
				return err
			}
			defer w.Stop()
			if syncExisting {
				w.Sync()
			}
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&syncExisting, "sync", true, "report files already present at startup")
	return cmd
}

// newFileWatcher wires a watcher whose events are vectorized and written to out.
func newFileWatcher(a *app, dirs []string, out io.Writer) *watcher.Watcher {
	vectorizer := a.components().Vectorizer
	var mu sync.Mutex
	emit := func(rec *cli.WatchRecord) {
		mu.Lock()
		defer mu.Unlock()
		if err := cli.WriteWatchRecord(out, rec); err != nil {
			a.logger.Warn("Failed to write watch record", zap.Error(err))
		}
	}
	handle := func(ev watcher.Event) {
		rec := &cli.WatchRecord{
			ID:   fileid.ID(ev.Path),
			Path: ev.Path,
			Op:   ev.Op.String(),
			Time: time.Now().UTC(),
		}
		if ev.Op == watcher.OpChanged {
			resp, err := vectorizer.VectorizeFile(ev.Path)
			if err != nil {
				rec.Error = err.Error()
			} else {
				rec.Vectors = resp
			}
		}
		emit(rec)
	}
	return watcher.New(dirs, handle,
		watcher.WithExtensions(a.cfg.Watch.Extensions),
		watcher.WithRecursive(a.cfg.Watch.RecursiveOrDefault()),
		watcher.WithLogger(a.logger),
	)
}
