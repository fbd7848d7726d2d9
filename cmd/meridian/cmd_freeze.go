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

var cmdFreeze = &cobra.Command{
	Use:   "freeze [admin] [asset] [account]",
	Short: "Freeze an account's primary store",
	Args:  cobra.ExactArgs(3),
	Run:   func(cmd *cobra.Command, args []string) { setFrozen(args, true) },
}

var cmdUnfreeze = &cobra.Command{
	Use:   "unfreeze [admin] [asset] [account]",
	Short: "Unfreeze an account's primary store",
	Args:  cobra.ExactArgs(3),
	Run:   func(cmd *cobra.Command, args []string) { setFrozen(args, false) },
}

func init() {
	cmdMain.AddCommand(cmdFreeze, cmdUnfreeze)
}

func setFrozen(args []string, frozen bool) {
	admin, asset, account := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	store := fungible.PrimaryStoreAddress(account, asset)
	checkf(b.ManagedSetFrozen(admin, asset, store, frozen), "set frozen")
	check(b.Commit())

	if frozen {
		fmt.Printf("Froze %v\n", account)
	} else {
		fmt.Printf("Unfroze %v\n", account)
	}
}
