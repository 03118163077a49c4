// relayctl signs relay requests and meta-transactions and issues API tokens
// for local testing against the relay API
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "relayctl",
		Usage: "sign requests and issue tokens for the gas relay API",
		Commands: []*cli.Command{
			keygenCommand,
			signRelayCommand,
			signMetaCommand,
			hashCommand,
			tokenCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
