package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mwalczak/flatbatch/processor"
)

type DeleteCmd struct {
	File  string `arg:"" help:"Batch document to modify."`
	ID    int    `arg:"" help:"ID of the transaction to delete."`
	Force bool   `help:"Delete without confirmation." short:"f"`
}

func (cmd *DeleteCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	if !cmd.Force && isTerminal() {
		confirmed, err := promptYesNo(fmt.Sprintf("Delete transaction %d from %s?", cmd.ID, cmd.File))
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stdout, "Aborted")
			return nil
		}
	}

	runCtx, report := globals.operationContext(ctx.Stderr, fmt.Sprintf("delete %s #%d", cmd.File, cmd.ID))
	defer report()

	if err := proc.DeleteTransaction(runCtx, cmd.File, cmd.ID); err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Deleted transaction %d from %s", cmd.ID, cmd.File))

	return nil
}
