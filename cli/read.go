package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/mwalczak/flatbatch/document"
	"github.com/mwalczak/flatbatch/processor"
)

type ReadCmd struct {
	File string `arg:"" help:"Batch document to read."`
	Dump bool   `help:"Print the parsed document instead of the stored text."`
}

func (cmd *ReadCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	runCtx, report := globals.operationContext(ctx.Stderr, "read "+cmd.File)
	defer report()

	doc, err := proc.Read(runCtx, cmd.File)
	if err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	if cmd.Dump {
		repr.Println(doc)
		return nil
	}

	text, err := document.Serialize(doc, delimiter)
	if err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}
	_, _ = fmt.Fprint(ctx.Stdout, text)

	return nil
}
