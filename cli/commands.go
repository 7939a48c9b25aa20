package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mwalczak/flatbatch/document"
	"github.com/mwalczak/flatbatch/processor"
	"github.com/mwalczak/flatbatch/storage"
	"github.com/mwalczak/flatbatch/telemetry"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands. Flags beat the
// config file, the config file beats the defaults.
type Globals struct {
	Delimiter       string `help:"Line delimiter used to read and write documents (default newline)."`
	LineLength      int    `help:"Maximum line length, delimiter included (default 121)."`
	MaxTransactions int    `help:"Maximum number of transactions per document (default 20000)."`
	Config          string `help:"YAML config file with delimiter, line_length and max_transactions." type:"existingfile" optional:""`
	Telemetry       bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Read   ReadCmd   `cmd:"" help:"Read, validate and print a batch document."`
	Add    AddCmd    `cmd:"" help:"Append a transaction to a batch document."`
	Delete DeleteCmd `cmd:"" help:"Delete a transaction and renumber the rest."`
	Update UpdateCmd `cmd:"" help:"Update a transaction or the header."`
	Create CreateCmd `cmd:"" help:"Create a batch document from scratch."`
	Check  CheckCmd  `cmd:"" help:"Validate a batch document, optionally watching for changes."`
}

// resolve merges defaults, config file, and flags into processor options
// and returns the effective delimiter alongside.
func (g *Globals) resolve() ([]processor.Option, string, error) {
	delimiter := processor.DefaultDelimiter
	limits := document.DefaultLimits()

	if g.Config != "" {
		cfg, err := LoadConfig(g.Config)
		if err != nil {
			return nil, "", err
		}
		if cfg.Delimiter != "" {
			delimiter = cfg.Delimiter
		}
		if cfg.LineLength > 0 {
			limits.LineLength = cfg.LineLength
		}
		if cfg.MaxTransactions > 0 {
			limits.MaxTransactions = cfg.MaxTransactions
		}
	}

	if g.Delimiter != "" {
		delimiter = g.Delimiter
	}
	if g.LineLength > 0 {
		limits.LineLength = g.LineLength
	}
	if g.MaxTransactions > 0 {
		limits.MaxTransactions = g.MaxTransactions
	}

	opts := []processor.Option{
		processor.WithDelimiter(delimiter),
		processor.WithLineLength(limits.LineLength),
		processor.WithMaxTransactions(limits.MaxTransactions),
		processor.WithStorage(storage.File{}),
	}

	return opts, delimiter, nil
}

// operationContext builds the context an operation runs under: an event
// sink printing to stderr, and a timing collector when --telemetry is set.
// The returned report func is safe to call once after the operation.
func (g *Globals) operationContext(stderr io.Writer, name string) (context.Context, func()) {
	ctx := telemetry.WithSink(context.Background(), eventPrinter{w: stderr})

	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)
	timer := collector.Start(name)

	return ctx, func() {
		timer.End()
		_, _ = fmt.Fprintln(stderr)
		collector.Report(stderr)
	}
}

// fail renders an operation failure with source context to stderr and
// converts it into an exit-code error for main.
func fail(ctx *kong.Context, file, delimiter string, err error) error {
	source, _ := os.ReadFile(file)
	renderer := NewErrorRenderer(string(source), delimiter)

	_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
	_, _ = fmt.Fprintln(ctx.Stderr)
	printError(ctx.Stderr, summarize(err))

	return NewCommandError(1)
}

// summarize maps an error to the short category line printed after it.
func summarize(err error) string {
	var validation *document.ValidationError
	var input *processor.InputError
	var capacity *processor.CapacityError
	var read *storage.ReadError
	var write *storage.WriteError

	switch {
	case errors.As(err, &validation):
		return fmt.Sprintf("validation failed (%s)", validation.Kind)
	case errors.As(err, &input):
		return "invalid input"
	case errors.As(err, &capacity):
		return "capacity reached"
	case errors.As(err, &read):
		return "read failed"
	case errors.As(err, &write):
		return "write failed"
	}
	return "operation failed"
}
