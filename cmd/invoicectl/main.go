// Command invoicectl is an offline toolbox for the invoice and pricing
// engines: render invoices from JSON, produce sample documents, preview
// product prices and spell amounts in Indian words.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	app := &cli.App{
		Name:  "invoicectl",
		Usage: "render invoices and inspect pricing without a running server",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "verbose logging"},
		},
		Before: func(c *cli.Context) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			sampleCommand(),
			renderCommand(),
			batchCommand(),
			pricingCommand(),
			wordsCommand(),
			hashCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("invoicectl")
	}
}
