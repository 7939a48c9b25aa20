package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mwalczak/flatbatch/processor"
	"github.com/mwalczak/flatbatch/record"
)

type CreateCmd struct {
	File        string   `arg:"" help:"Destination file; overwritten if present."`
	Name        string   `required:"" help:"Name of the customer."`
	Surname     string   `required:"" help:"Surname of the customer."`
	Patronymic  string   `required:"" help:"Patronymic of the customer."`
	Address     string   `required:"" help:"Address of the customer."`
	Transaction []string `required:"" short:"t" help:"Transaction as AMOUNT:CURRENCY; repeatable, in document order."`
}

func (cmd *CreateCmd) Run(ctx *kong.Context, globals *Globals) error {
	opts, delimiter, err := globals.resolve()
	if err != nil {
		return err
	}
	proc := processor.New(opts...)

	header, err := record.NewHeader(cmd.Name, cmd.Surname, cmd.Patronymic, cmd.Address)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	transactions := make([]record.Transaction, 0, len(cmd.Transaction))
	for i, arg := range cmd.Transaction {
		amountArg, currencyArg, found := strings.Cut(arg, ":")
		if !found {
			printError(ctx.Stderr, fmt.Sprintf("invalid transaction %q: expected AMOUNT:CURRENCY", arg))
			return NewCommandError(1)
		}

		amount, currency, err := parseMoney(amountArg, currencyArg)
		if err != nil {
			printError(ctx.Stderr, err.Error())
			return NewCommandError(1)
		}

		transaction, err := record.NewTransaction(i+1, amount, currency)
		if err != nil {
			printError(ctx.Stderr, err.Error())
			return NewCommandError(1)
		}
		transactions = append(transactions, transaction)
	}

	if _, err := os.Stat(cmd.File); err == nil {
		if isTerminal() {
			confirmed, err := promptYesNo(fmt.Sprintf("%s exists. Overwrite?", cmd.File))
			if err != nil {
				return err
			}
			if !confirmed {
				printInfof(ctx.Stdout, "Aborted")
				return nil
			}
		} else {
			printInfof(ctx.Stderr, "Overwriting %s", cmd.File)
		}
	}

	runCtx, report := globals.operationContext(ctx.Stderr, "create "+cmd.File)
	defer report()

	if err := proc.Create(runCtx, cmd.File, header, transactions); err != nil {
		return fail(ctx, cmd.File, delimiter, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Created %s with %d transaction(s)", cmd.File, len(transactions)))

	return nil
}
