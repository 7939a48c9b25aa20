package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/mwalczak/flatbatch/processor"
)

type CheckCmd struct {
	File  string `arg:"" help:"Batch document to validate."`
	Watch bool   `help:"Re-run the check whenever the file changes." short:"w"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	if !cmd.Watch {
		return cmd.checkOnce(ctx, globals, proc, delimiter)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself so that editors that
	// replace the file on save (rename + create) keep being observed.
	if err := watcher.Add(filepath.Dir(cmd.File)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	_ = cmd.checkOnce(ctx, globals, proc, delimiter)
	printInfof(ctx.Stderr, "Watching %s", cmd.File)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	target, err := filepath.Abs(cmd.File)
	if err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce bursts of writes from a single save.
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				_ = cmd.checkOnce(ctx, globals, proc, delimiter)
			})

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, watchErr.Error())
		}
	}
}

func (cmd *CheckCmd) checkOnce(ctx *kong.Context, globals *Globals, proc *processor.Processor, delimiter string) error {
	runCtx, report := globals.operationContext(ctx.Stderr, "check "+cmd.File)
	defer report()

	doc, err := proc.Read(runCtx, cmd.File)
	if err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d transaction(s), control sum %s",
		doc.Footer.TotalCounter, doc.Footer.ControlSum.StringFixed(2)))

	return nil
}
