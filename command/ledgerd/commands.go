// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transaction"
)

const (
	defaultOrphanCount       = 1
	addressTransactionsCount = 20
)

// commands that only read the database
func isQuery(command string) bool {
	switch command {
	case "height", "h", "block", "b", "balance", "account", "a", "group", "g", "export":
		return true
	}
	return false
}

// run a single command against the node
func (n *node) run(w io.Writer, command string, arguments []string) error {
	n.log.Infof("command: %s  arguments: %q", command, arguments)

	switch command {
	case "init":
		return n.initialise(w)

	case "import":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		return n.importBlocks(w, arguments[0])

	case "export":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		return n.exportBlocks(w, arguments[0])

	case "orphan":
		count := uint64(defaultOrphanCount)
		if len(arguments) > 0 {
			c, err := strconv.ParseUint(arguments[0], 10, 64)
			if nil != err {
				return err
			}
			count = c
		}
		return n.orphan(w, count)

	case "submit":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		_, err := n.submit(w, arguments)
		return err

	case "mint":
		return n.mint(w, arguments)

	case "height", "h":
		height, err := n.processor.Height()
		if nil != err {
			return err
		}
		_, err = fmt.Fprintf(w, "%d\n", height)
		return err

	case "block", "b":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		height, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			return err
		}
		return n.showBlock(w, height)

	case "balance":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		return n.showBalance(w, arguments)

	case "account", "a":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		return n.showAccount(w, arguments[0])

	case "group", "g":
		if len(arguments) < 1 {
			return ErrMissingArgument
		}
		id, err := strconv.ParseUint(arguments[0], 10, 32)
		if nil != err {
			return err
		}
		return n.showGroup(w, uint32(id))

	default:
		return ErrUnknownCommand
	}
}

// create the genesis block from the configured allocations
func (n *node) initialise(w io.Writer) error {
	height, err := n.processor.Height()
	if nil != err {
		return err
	}
	if 0 != height {
		return ErrAlreadyInitialised
	}

	key, err := readKeyFile(n.configuration.GenesisKeyFile)
	if nil != err {
		return err
	}

	allocations, err := n.configuration.allocations()
	if nil != err {
		return err
	}

	// the genesis key must be able to mint the next block
	found := false
	for _, a := range allocations {
		if a.Address == key.Address() {
			found = true
			break
		}
	}
	if !found {
		n.log.Infof("add founder allocation for genesis key: %s", key.Address())
		allocations = append([]block.Allocation{
			{Address: key.Address(), Level: 1, Flags: chain.FlagFounder},
		}, allocations...)
	}

	genesis, err := block.NewGenesis(n.parameters, key, allocations)
	if nil != err {
		return err
	}
	if err := n.process(genesis); nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "genesis: %s  allocations: %d\n", genesis.Signature(), len(allocations))
	return err
}

// apply hex encoded blocks, one per line
func (n *node) importBlocks(w io.Writer, fileName string) error {
	f, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 65536), 2*n.parameters.MaximumBlockBytes+2)
	for line := 1; scanner.Scan(); line += 1 {
		s := strings.TrimSpace(scanner.Text())
		if "" == s || strings.HasPrefix(s, "#") {
			continue
		}
		buffer, err := hex.DecodeString(s)
		if nil != err {
			return fmt.Errorf("line: %d  error: %s", line, ErrNotHex)
		}
		b, err := block.Packed(buffer).Unpack()
		if nil != err {
			return fmt.Errorf("line: %d  error: %s", line, err)
		}
		if err := n.process(b); nil != err {
			return fmt.Errorf("line: %d  error: %s", line, err)
		}
		count += 1
	}
	if err := scanner.Err(); nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "imported blocks: %d\n", count)
	return err
}

// write every block as hex, one per line, genesis first
func (n *node) exportBlocks(w io.Writer, fileName string) error {
	height, err := n.processor.Height()
	if nil != err {
		return err
	}

	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		return err
	}
	defer f.Close()

	out := bufio.NewWriter(f)
	for h := uint64(block.GenesisHeight); h <= height; h += 1 {
		b, err := n.processor.Get(h)
		if nil != err {
			return err
		}
		if nil == b {
			return fmt.Errorf("block: %d  error: %s", h, ErrEmptyChain)
		}
		if _, err := fmt.Fprintf(out, "%s\n", hex.EncodeToString(b.Pack())); nil != err {
			return err
		}
	}
	if err := out.Flush(); nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "exported blocks: %d\n", height)
	return err
}

// remove blocks from the top of the chain and return their
// transactions to the pool
func (n *node) orphan(w io.Writer, count uint64) error {
	height, err := n.processor.Height()
	if nil != err {
		return err
	}
	if 0 == height {
		return ErrEmptyChain
	}
	if count >= height {
		count = height - 1
	}

	transactions, err := n.processor.DeleteDownToHeight(height - count + 1)
	if nil != err {
		return err
	}
	resubmitted, err := n.pool.Resubmit(transactions)
	if nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "orphaned blocks: %d  transactions: %d  still valid: %d\n", count, len(transactions), resubmitted)
	return err
}

// check transactions against the chain and hold them in the pool
func (n *node) submit(w io.Writer, arguments []string) (int, error) {
	admitted := 0
	for i, s := range arguments {
		buffer, err := hex.DecodeString(strings.TrimSpace(s))
		if nil != err {
			return admitted, fmt.Errorf("transaction[%d]: %s", i, ErrNotHex)
		}
		result, err := n.pool.Submit(buffer)
		if nil != err {
			return admitted, fmt.Errorf("transaction[%d]: %s", i, err)
		}
		if _, err := fmt.Fprintf(w, "transaction[%d]: %s\n", i, result); nil != err {
			return admitted, err
		}
		if transaction.OK != result {
			return admitted, ErrTransactionRefused
		}
		admitted += 1
	}
	return admitted, nil
}

// submit the given transactions then seal the pool into a block
// signed by the minter key
func (n *node) mint(w io.Writer, arguments []string) error {
	if _, err := n.submit(w, arguments); nil != err {
		return err
	}

	pending := n.pool.Pending()
	if 0 == len(pending) {
		return ErrNoPending
	}
	if len(pending) > n.parameters.MaximumBlockTransactions {
		pending = pending[:n.parameters.MaximumBlockTransactions]
	}

	key, err := readKeyFile(n.configuration.MinterKeyFile)
	if nil != err {
		return err
	}

	s, release, err := n.state()
	if nil != err {
		return err
	}
	minter, err := s.GetAccount(key.Address())
	release()
	if nil != err {
		return err
	}
	weight := uint32(0)
	if nil != minter {
		weight = uint32(minter.Level)
	}

	height, err := n.processor.Height()
	if nil != err {
		return err
	}
	if 0 == height {
		return ErrEmptyChain
	}
	top, err := n.processor.Get(height)
	if nil != err {
		return err
	}

	timestamp := time.Now().UnixNano() / int64(time.Millisecond)
	if timestamp <= top.Timestamp {
		timestamp = top.Timestamp + 1
	}

	b := &block.Block{
		Version:       block.Version,
		Reference:     top.Signature(),
		Timestamp:     timestamp,
		MintingWeight: weight,
		Transactions:  pending,
	}
	b.Sign(key)

	if err := n.process(b); nil != err {
		return err
	}
	if err := n.pool.Confirmed(b); nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "block: %d  transactions: %d  signature: %s\n", b.Height, len(b.Transactions), b.Signature())
	return err
}

func (n *node) process(b *block.Block) error {
	result, rejection, err := n.processor.Process(b)
	if nil != err {
		return err
	}
	if block.OK != result {
		if nil != rejection {
			return fmt.Errorf("%s: %s  transaction[%d]: %s", ErrBlockRejected, result, rejection.Index, rejection.Result)
		}
		return fmt.Errorf("%s: %s", ErrBlockRejected, result)
	}
	return nil
}

type transactionDisplay struct {
	Type      string            `json:"type"`
	Signature account.Signature `json:"signature"`
	Record    interface{}       `json:"record"`
}

func displayTransactions(transactions []*transaction.Transaction) []transactionDisplay {
	display := make([]transactionDisplay, len(transactions))
	for i, tx := range transactions {
		display[i] = transactionDisplay{
			Type:      tx.Type().String(),
			Signature: tx.Signature(),
			Record:    tx.Record,
		}
	}
	return display
}

func (n *node) showBlock(w io.Writer, height uint64) error {
	b, err := n.processor.Get(height)
	if nil != err {
		return err
	}
	if nil == b {
		return fmt.Errorf("block: %d  error: not found", height)
	}

	return printJson(w, struct {
		*block.Block
		Signature    block.Signature      `json:"signature"`
		Transactions []transactionDisplay `json:"transactions"`
	}{
		Block:        b,
		Signature:    b.Signature(),
		Transactions: displayTransactions(b.Transactions),
	})
}

// balance ADDRESS [ASSET [CONFIRMATIONS]]
func (n *node) showBalance(w io.Writer, arguments []string) error {
	address, err := account.AddressFromBase58(arguments[0])
	if nil != err {
		return err
	}
	asset := uint64(state.NativeAsset)
	if len(arguments) > 1 {
		asset, err = strconv.ParseUint(arguments[1], 10, 64)
		if nil != err {
			return err
		}
	}
	confirmations := uint64(0)
	if len(arguments) > 2 {
		confirmations, err = strconv.ParseUint(arguments[2], 10, 64)
		if nil != err {
			return err
		}
	}

	s, release, err := n.state()
	if nil != err {
		return err
	}
	defer release()

	value, err := s.GetBalance(address, asset)
	if 0 != confirmations {
		value, err = s.BalanceConfirmed(address, asset, confirmations)
	}
	if nil != err {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", value)
	return err
}

func (n *node) showAccount(w io.Writer, s58 string) error {
	address, err := account.AddressFromBase58(s58)
	if nil != err {
		return err
	}

	s, release, err := n.state()
	if nil != err {
		return err
	}
	defer release()

	a, err := s.GetAccount(address)
	if nil != err {
		return err
	}
	balances, err := s.ListBalances(address)
	if nil != err {
		return err
	}
	transactions, err := s.AddressTransactions(address, 0, addressTransactionsCount)
	if nil != err {
		return err
	}

	return printJson(w, struct {
		Account      *state.Account      `json:"account"`
		Balances     []state.Balance     `json:"balances"`
		Transactions []account.Signature `json:"transactions"`
	}{
		Account:      a,
		Balances:     balances,
		Transactions: transactions,
	})
}

func (n *node) showGroup(w io.Writer, id uint32) error {
	s, release, err := n.state()
	if nil != err {
		return err
	}
	defer release()

	g, err := s.GetGroup(id)
	if nil != err {
		return err
	}
	if nil == g {
		return fmt.Errorf("group: %d  error: not found", id)
	}

	members, err := s.ListMembers(id)
	if nil != err {
		return err
	}
	admins, err := s.ListAdmins(id)
	if nil != err {
		return err
	}
	bans, err := s.ListBans(id)
	if nil != err {
		return err
	}
	invites, err := s.ListInvites(id)
	if nil != err {
		return err
	}
	requests, err := s.ListJoinRequests(id)
	if nil != err {
		return err
	}

	return printJson(w, struct {
		Group        *state.Group        `json:"group"`
		Members      []state.Member      `json:"members"`
		Admins       []state.Admin       `json:"admins"`
		Bans         []state.Ban         `json:"bans"`
		Invites      []state.Invite      `json:"invites"`
		JoinRequests []state.JoinRequest `json:"joinRequests"`
	}{
		Group:        g,
		Members:      members,
		Admins:       admins,
		Bans:         bans,
		Invites:      invites,
		JoinRequests: requests,
	})
}

func printJson(w io.Writer, message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
