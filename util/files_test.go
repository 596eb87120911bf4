// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/ledger.leveldb", util.EnsureAbsolute("/data", "ledger.leveldb"), "relative")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "./log/"), "cleaned")
	assert.Equal(t, "/var/run/x.pid", util.EnsureAbsolute("/data", "/var/run/x.pid"), "absolute")
}

func TestFirstLine(t *testing.T) {
	dir, err := ioutil.TempDir("", "util")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	tests := []struct {
		content  string
		expected string
		ok       bool
	}{
		{"seed\n", "seed", true},
		{"  seed  ", "seed", true},
		{"# key file\n\n  seed\nother\n", "seed", true},
		{"", "", false},
		{"# only a comment\n\n", "", false},
	}

	for i, item := range tests {
		fileName := filepath.Join(dir, "key")
		if err := ioutil.WriteFile(fileName, []byte(item.content), 0600); nil != err {
			t.Fatalf("%d: write error: %s", i, err)
		}
		s, err := util.FirstLine(fileName)
		if item.ok {
			assert.Nil(t, err, "%d: unexpected error", i)
			assert.Equal(t, item.expected, s, "%d: wrong line", i)
		} else {
			assert.NotNil(t, err, "%d: expected error", i)
		}
	}

	_, err = util.FirstLine(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err), "missing file")
}
