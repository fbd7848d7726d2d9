// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cmdGrant = &cobra.Command{
	Use:   "grant [owner] [asset] [delegate] [amount]",
	Short: "Authorize a delegate to withdraw up to amount from the owner's stores",
	Args:  cobra.ExactArgs(4),
	Run:   grant,
}

var cmdRevoke = &cobra.Command{
	Use:   "revoke [owner] [asset] [delegate]",
	Short: "Revoke a delegate's withdrawal permission",
	Args:  cobra.ExactArgs(3),
	Run:   revoke,
}

func init() {
	cmdMain.AddCommand(cmdGrant, cmdRevoke)
}

func grant(_ *cobra.Command, args []string) {
	owner, asset, delegate := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])
	amount := parseAmount(args[3])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	_, err := b.GrantPermission(owner, delegate, asset, amount)
	checkf(err, "grant permission")
	check(b.Commit())

	fmt.Printf("Granted %v a budget of %d\n", delegate, amount)
}

func revoke(_ *cobra.Command, args []string) {
	owner, asset, delegate := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	checkf(b.RevokePermission(owner, delegate, asset), "revoke permission")
	check(b.Commit())

	fmt.Printf("Revoked %v's permission\n", delegate)
}
