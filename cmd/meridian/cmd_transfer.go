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

var cmdTransfer = &cobra.Command{
	Use:   "transfer [from] [asset] [to] [amount]",
	Short: "Transfer between primary stores",
	Args:  cobra.ExactArgs(4),
	Run:   transfer,
}

func init() {
	cmdMain.AddCommand(cmdTransfer)
}

func transfer(_ *cobra.Command, args []string) {
	from, asset, to := parseAccount(args[0]), parseAccount(args[1]), parseAccount(args[2])
	amount := parseAmount(args[3])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	checkf(b.PrimaryTransfer(from, to, asset, amount), "transfer")
	check(b.Commit())

	fmt.Printf("Transferred %d from %v to %v\n", amount, from, to)
}
