package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mwalczak/flatbatch/processor"
	"github.com/mwalczak/flatbatch/record"
)

type UpdateCmd struct {
	Transaction UpdateTransactionCmd `cmd:"" help:"Replace a transaction's amount and currency."`
	Header      UpdateHeaderCmd      `cmd:"" help:"Update header fields."`
}

type UpdateTransactionCmd struct {
	File     string `arg:"" help:"Batch document to modify."`
	ID       int    `required:"" help:"ID of the transaction to update."`
	Amount   string `required:"" short:"a" help:"New amount of the transaction."`
	Currency string `required:"" short:"c" help:"New currency of the transaction (PLN, EUR or USD)."`
}

func (cmd *UpdateTransactionCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	amount, currency, err := parseMoney(cmd.Amount, cmd.Currency)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	runCtx, report := globals.operationContext(ctx.Stderr, fmt.Sprintf("update %s #%d", cmd.File, cmd.ID))
	defer report()

	if err := proc.UpdateTransaction(runCtx, cmd.File, cmd.ID, amount, currency); err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Updated transaction %d in %s", cmd.ID, cmd.File))

	return nil
}

type UpdateHeaderCmd struct {
	File       string `arg:"" help:"Batch document to modify."`
	Name       string `help:"Name of the customer."`
	Surname    string `help:"Surname of the customer."`
	Patronymic string `help:"Patronymic of the customer."`
	Address    string `help:"Address of the customer."`
}

func (cmd *UpdateHeaderCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	update := record.HeaderUpdate{}
	if cmd.Name != "" {
		update.Name = &cmd.Name
	}
	if cmd.Surname != "" {
		update.Surname = &cmd.Surname
	}
	if cmd.Patronymic != "" {
		update.Patronymic = &cmd.Patronymic
	}
	if cmd.Address != "" {
		update.Address = &cmd.Address
	}

	if update.IsEmpty() {
		printInfof(ctx.Stdout, "Nothing to update in %s", cmd.File)
		return nil
	}

	runCtx, report := globals.operationContext(ctx.Stderr, "update header "+cmd.File)
	defer report()

	if err := proc.UpdateHeader(runCtx, cmd.File, update); err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Updated the header of %s", cmd.File))

	return nil
}
