package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/mwalczak/flatbatch/processor"
	"github.com/mwalczak/flatbatch/record"
)

type AddCmd struct {
	File     string `arg:"" help:"Batch document to modify."`
	Amount   string `arg:"" help:"Amount of the transaction to append."`
	Currency string `arg:"" help:"Currency of the transaction to append (PLN, EUR or USD)."`
}

func (cmd *AddCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	runCtx, report := globals.operationContext(ctx.Stderr, "add "+cmd.File)
	defer report()

	if err := proc.AddTransaction(runCtx, cmd.File, amount, currency); err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Appended %s %s to %s", amount.StringFixed(2), currency, cmd.File))

	return nil
}

// parseMoney converts the textual amount/currency argument pair.
func parseMoney(amountArg, currencyArg string) (decimal.Decimal, record.Currency, error) {
	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("invalid amount %q: %w", amountArg, err)
	}

	currency, err := record.ParseCurrency(currencyArg)
	if err != nil {
		return decimal.Zero, "", err
	}

	return amount, currency, nil
}
