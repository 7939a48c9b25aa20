package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mwalczak/flatbatch/cli"
)

var args struct {
	Version kong.VersionFlag `help:"Show version information."`
	cli.Commands
}

func main() {
	ctx := kong.Parse(&args,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("flatbatch"),
		kong.Description("An editor for fixed-width batch transaction files."),
		kong.UsageOnError(),
		kong.Bind(&args.Globals),
	)

	err := ctx.Run()

	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if cli.Version == "" {
		cli.Version = "dev"
	}
	if cli.CommitSHA == "" {
		return cli.Version
	}
	return fmt.Sprintf("%s (%s)", cli.Version, cli.CommitSHA)
}
