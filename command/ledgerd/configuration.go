// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/amount"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/reservoir"
	"github.com/bitmark-inc/ledgerd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultGenesisKeyFile = "genesis.key"

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = chain.Ledger + ".leveldb"
	defaultTestingDatabase  = chain.Testing + ".leveldb"
	defaultLocalDatabase    = chain.Local + ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// one genesis allocation, amount is decimal text
type AllocationType struct {
	Address string `gluamapper:"address" json:"address"`
	Asset   uint64 `gluamapper:"asset" json:"asset"`
	Amount  string `gluamapper:"amount" json:"amount"`
	Level   int    `gluamapper:"level" json:"level"`
	Founder bool   `gluamapper:"founder" json:"founder"`
}

type MetricsType struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

type Configuration struct {
	DataDirectory  string                  `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string                  `gluamapper:"pidfile" json:"pidfile"`
	Chain          string                  `gluamapper:"chain" json:"chain"`
	Database       DatabaseType            `gluamapper:"database" json:"database"`
	GenesisKeyFile string                  `gluamapper:"genesis_key_file" json:"genesis_key_file"`
	MinterKeyFile  string                  `gluamapper:"minter_key_file" json:"minter_key_file"`
	Genesis        []AllocationType        `gluamapper:"genesis" json:"genesis"`
	Reservoir      reservoir.Configuration `gluamapper:"reservoir" json:"reservoir"`
	Metrics        MetricsType             `gluamapper:"metrics" json:"metrics"`
	Logging        logger.Configuration    `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:  defaultDataDirectory,
		PidFile:        "", // no PidFile by default
		Chain:          chain.Ledger,
		GenesisKeyFile: defaultGenesisKeyFile,
		MinterKeyFile:  "", // same as genesis key

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if the database name was not specified switch to the
	// chain's default.  Abort if the chain name is not recognised.
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	if options.Database.Name == defaultLedgerDatabase {
		switch options.Chain {
		case chain.Ledger:
			// already correct default
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	if "" == options.MinterKeyFile {
		options.MinterKeyFile = options.GenesisKeyFile
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.GenesisKeyFile,
		&options.MinterKeyFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path separator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// genesis allocations in block form
func (c *Configuration) allocations() ([]block.Allocation, error) {
	allocations := make([]block.Allocation, 0, len(c.Genesis))
	for i, g := range c.Genesis {
		address, err := account.AddressFromBase58(g.Address)
		if nil != err {
			return nil, fmt.Errorf("genesis[%d]: address: %q  error: %s", i, g.Address, err)
		}
		value := amount.Zero
		if "" != g.Amount {
			value, err = amount.Parse(g.Amount)
			if nil != err {
				return nil, fmt.Errorf("genesis[%d]: amount: %q  error: %s", i, g.Amount, err)
			}
		}
		if g.Level < 0 || g.Level > 255 {
			return nil, fmt.Errorf("genesis[%d]: level: %d  out of range", i, g.Level)
		}
		flags := uint32(0)
		if g.Founder {
			flags |= chain.FlagFounder
		}
		allocations = append(allocations, block.Allocation{
			Address: address,
			Asset:   g.Asset,
			Amount:  value,
			Level:   uint8(g.Level),
			Flags:   flags,
		})
	}
	return allocations, nil
}
