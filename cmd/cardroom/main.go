package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Demo    DemoCmd          `cmd:"" help:"Run a scripted multi-player session against a local card room"`
	Odds    OddsCmd          `cmd:"" help:"Calculate hand win odds by Monte Carlo simulation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardroom"),
		kong.Description("Transactional Texas Hold'em card room"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
