// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/meridianledger/meridian/fungible"
)

var cmdMint = &cobra.Command{
	Use:   "mint [admin] [asset] [account] [amount]",
	Short: "Mint into an account's primary store",
	Args:  cobra.ExactArgs(4),
	Run:   mint,
}

var cmdBurn = &cobra.Command{
	Use:   "burn [admin] [asset] [account] [amount]",
	Short: "Burn from an account's primary store",
	Args:  cobra.ExactArgs(4),
	Run:   burn,
}

func init() {
	cmdMain.AddCommand(cmdMint, cmdBurn)
}

func mint(_ *cobra.Command, args []string) {
	admin, asset, account := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])
	amount := parseAmount(args[3])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	store, err := b.EnsurePrimaryStore(account, asset)
	checkf(err, "ensure store")
	checkf(b.ManagedMint(admin, asset, store, amount), "mint")
	check(b.Commit())

	fmt.Printf("Minted %d to %v\n", amount, account)
}

func burn(_ *cobra.Command, args []string) {
	admin, asset, account := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])
	amount := parseAmount(args[3])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	checkf(b.ManagedBurn(admin, asset, fungible.PrimaryStoreAddress(account, asset), amount), "burn")
	check(b.Commit())

	fmt.Printf("Burned %d from %v\n", amount, account)
}
