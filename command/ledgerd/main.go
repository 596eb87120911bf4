// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/ledgerd/fault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 || (len(arguments) > 0 && "version" == arguments[0]) {
		fmt.Printf("%s\n", version)
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || "help" == arguments[0] {
		usage(program)
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// metrics for the duration of the command
	if "" != theConfiguration.Metrics.Listen {
		go func() {
			log.Infof("metrics listener on: %s", theConfiguration.Metrics.Listen)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			err := http.ListenAndServe(theConfiguration.Metrics.Listen, mux)
			log.Errorf("metrics listener error: %s", err)
		}()
	}

	command := arguments[0]
	n, err := newNode(theConfiguration, isQuery(command))
	if nil != err {
		log.Criticalf("open ledger error: %s", err)
		exitwithstatus.Message("%s: open ledger error: %s", program, err)
	}
	defer n.close()

	err = n.run(os.Stdout, command, arguments[1:])
	if nil != err {
		log.Errorf("command: %s  error: %s", command, err)
		exitwithstatus.Message("%s: %s error: %s", program, command, err)
	}
}

func usage(program string) {
	fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE command [arguments...]\n", program)

	fmt.Printf("supported commands:\n\n")
	fmt.Printf("  help                                 - display this message\n")
	fmt.Printf("  version                              - display version string\n\n")

	fmt.Printf("  init                                 - create the genesis block signed by the genesis key file\n")
	fmt.Printf("  import FILE                          - apply hex blocks from FILE, one per line\n")
	fmt.Printf("  export FILE                          - write all blocks to a new FILE as hex, one per line\n")
	fmt.Printf("  orphan [N]                           - remove the top N blocks, default 1\n")
	fmt.Printf("\n")

	fmt.Printf("  submit HEX...                        - check transactions against the chain\n")
	fmt.Printf("  mint [HEX...]                        - add transactions to a new block signed by the minter key file\n")
	fmt.Printf("\n")

	fmt.Printf("  height                          (h)  - height of the top block\n")
	fmt.Printf("  block N                         (b)  - show block N as JSON\n")
	fmt.Printf("  balance ADDRESS [ASSET [CONF]]       - balance, optionally with CONF confirmations\n")
	fmt.Printf("  account ADDRESS                 (a)  - show account, balances and recent transactions\n")
	fmt.Printf("  group ID                        (g)  - show group and its members\n")
	fmt.Printf("\n")
}
