// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/fault"
)

type database struct {
	Directory string `gluamapper:"directory"`
	Name      string `gluamapper:"name"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Chain         string            `gluamapper:"chain"`
	Database      database          `gluamapper:"database"`
	Listen        []string          `gluamapper:"listen"`
	Levels        map[string]string `gluamapper:"levels"`
	Count         int               `gluamapper:"count"`
	Rate          float64           `gluamapper:"rate"`
	Enabled       bool              `gluamapper:"enabled"`
	Script        string            `gluamapper:"script"`
}

const testFile = `
local M = {}

M.data_directory = "."
M.chain = "local"
M.database = {
    name = "local.leveldb",
}
M.listen = { "127.0.0.1:2150", "[::1]:2150" }
M.levels = {
    DEFAULT = "info",
    block = "debug",
}
M.count = 12
M.rate = 2.5
M.enabled = true
M.script = arg[0]

return M
`

func writeFile(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "test.conf")
	if err := ioutil.WriteFile(fileName, []byte(content), 0600); nil != err {
		t.Fatalf("write file error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeFile(t, testFile)
	defer cleanup()

	config := &testConfiguration{
		Database: database{
			Directory: "data",
			Name:      "ledger.leveldb",
		},
		Count: 1,
	}
	err := configuration.ParseConfigurationFile(fileName, config)
	if nil != err {
		t.Fatalf("parse error: %s", err)
	}

	assert.Equal(t, ".", config.DataDirectory, "wrong data directory")
	assert.Equal(t, "local", config.Chain, "wrong chain")
	assert.Equal(t, "data", config.Database.Directory, "default overwritten")
	assert.Equal(t, "local.leveldb", config.Database.Name, "wrong database name")
	assert.Equal(t, []string{"127.0.0.1:2150", "[::1]:2150"}, config.Listen, "wrong listen")
	assert.Equal(t, map[string]string{"DEFAULT": "info", "block": "debug"}, config.Levels, "wrong levels")
	assert.Equal(t, 12, config.Count, "wrong count")
	assert.Equal(t, 2.5, config.Rate, "wrong rate")
	assert.True(t, config.Enabled, "wrong enabled")
	assert.Equal(t, fileName, config.Script, "arg[0] not set")
}

func TestParseErrors(t *testing.T) {
	fileName, cleanup := writeFile(t, testFile)
	defer cleanup()

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, config)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "struct value accepted")

	s := "string"
	err = configuration.ParseConfigurationFile(fileName, &s)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "string pointer accepted")

	err = configuration.ParseConfigurationFile(fileName+".missing", &config)
	assert.NotNil(t, err, "missing file accepted")

	noTable, cleanupNoTable := writeFile(t, "x = 1\n")
	defer cleanupNoTable()
	err = configuration.ParseConfigurationFile(noTable, &config)
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "missing return accepted")

	broken, cleanupBroken := writeFile(t, "return {\n")
	defer cleanupBroken()
	err = configuration.ParseConfigurationFile(broken, &config)
	assert.NotNil(t, err, "syntax error accepted")
}
