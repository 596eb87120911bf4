// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/bitmark-inc/ledgerd/account"
)

type keyPair struct {
	privateKey *account.PrivateKey
	address    account.Address
}

func makeKeyPair(t *testing.T, fill byte) keyPair {
	key, err := account.NewPrivateKey(bytes.Repeat([]byte{fill}, account.SeedLength))
	if nil != err {
		t.Fatalf("new private key error: %s", err)
	}
	return keyPair{
		privateKey: key,
		address:    key.Address(),
	}
}

func reference(fill byte) account.Signature {
	s := account.Signature{}
	for i := range s {
		s[i] = fill
	}
	return s
}

// data as a Go byte slice literal, eight to a line
func formatBytes(name string, data []byte) string {
	b := strings.Builder{}
	b.WriteString(name)
	b.WriteString(" := []byte{")
	for i, c := range data {
		if 0 == i%8 {
			b.WriteString("\n\t")
		} else {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "0x%02x,", c)
	}
	b.WriteString("\n}")
	return b.String()
}
