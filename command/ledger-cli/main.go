// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	err := newApp().Run(os.Args)
	if nil != err {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ledger-cli"
	app.Usage = "build and sign ledger transactions"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "seed, s",
			Value:  "",
			Usage:  " signing key `SEED` in base58",
			EnvVar: "LEDGER_SEED",
		},
		cli.StringFlag{
			Name:  "reference, r",
			Value: "",
			Usage: " creator's last `SIGNATURE` in base58 [blank for a new account]",
		},
		cli.StringFlag{
			Name:  "fee, f",
			Value: "1",
			Usage: " transaction fee `AMOUNT`",
		},
		cli.Int64Flag{
			Name:  "timestamp, t",
			Value: 0,
			Usage: " timestamp in `MILLISECONDS` [default now]",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a new signing seed",
			Action: runKeygen,
		},
		{
			Name:   "address",
			Usage:  "show the public key and address of the seed",
			Action: runAddress,
		},
		{
			Name:      "payment",
			Usage:     "pay native coins to an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "to, a",
					Value: "",
					Usage: "*recipient `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, n",
					Value: "",
					Usage: "*`AMOUNT` to send",
				},
			},
			Action: runPayment,
		},
		{
			Name:      "create-group",
			Usage:     "create a group owned by the seed's account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*lower case group `NAME`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*group `DESCRIPTION`",
				},
				cli.BoolFlag{
					Name:  "open, o",
					Usage: " anyone may join without an invite",
				},
				cli.IntFlag{
					Name:  "threshold",
					Value: 0,
					Usage: " approval threshold `PERCENT`",
				},
				cli.IntFlag{
					Name:  "minimum-delay",
					Value: 0,
					Usage: " minimum approval delay in `BLOCKS`",
				},
				cli.IntFlag{
					Name:  "maximum-delay",
					Value: 0,
					Usage: " maximum approval delay in `BLOCKS`",
				},
			},
			Action: runCreateGroup,
		},
		{
			Name:      "join-group",
			Usage:     "join, or request to join, a group",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "group, g",
					Value: 0,
					Usage: "*group `ID`",
				},
			},
			Action: runJoinGroup,
		},
		{
			Name:      "leave-group",
			Usage:     "leave a group",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "group, g",
					Value: 0,
					Usage: "*group `ID`",
				},
			},
			Action: runLeaveGroup,
		},
		{
			Name:      "decode",
			Usage:     "decode a hex transaction and check its signature",
			ArgsUsage: "HEX",
			Action:    runDecode,
		},
		{
			Name:  "version",
			Usage: "display ledger-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
