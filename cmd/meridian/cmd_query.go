// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cmdBalance = &cobra.Command{
	Use:   "balance [account] [asset]",
	Short: "Show an account's primary-store balance",
	Args:  cobra.ExactArgs(2),
	Run:   showBalance,
}

var cmdSupply = &cobra.Command{
	Use:   "supply [asset]",
	Short: "Show an asset's supply",
	Args:  cobra.ExactArgs(1),
	Run:   showSupply,
}

var cmdInfo = &cobra.Command{
	Use:   "info [asset]",
	Short: "Show an asset's metadata",
	Args:  cobra.ExactArgs(1),
	Run:   showInfo,
}

func init() {
	cmdMain.AddCommand(cmdBalance, cmdSupply, cmdInfo)
}

func showBalance(_ *cobra.Command, args []string) {
	account, asset := parseAccount(args[0]), parseAccount(args[1])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(false)
	defer b.Discard()

	v, err := b.PrimaryBalance(account, asset)
	checkf(err, "read balance")
	fmt.Printf("%s\n", color.GreenString("%d", v))
}

func showSupply(_ *cobra.Command, args []string) {
	asset := parseAccount(args[0])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(false)
	defer b.Discard()

	current, ok, err := b.Supply(asset)
	checkf(err, "read supply")
	if !ok {
		fmt.Println("Supply is not tracked")
		return
	}
	fmt.Printf("Current: %v\n", current)

	max, ok, err := b.MaximumSupply(asset)
	checkf(err, "read maximum supply")
	if ok {
		fmt.Printf("Maximum: %v\n", max)
	} else {
		fmt.Println("Maximum: unlimited")
	}
}

func showInfo(_ *cobra.Command, args []string) {
	asset := parseAccount(args[0])

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(false)
	defer b.Discard()

	md, err := b.Metadata(asset)
	checkf(err, "read metadata")
	fmt.Printf("Name:     %s\n", md.Name)
	fmt.Printf("Symbol:   %s\n", md.Symbol)
	fmt.Printf("Decimals: %d\n", md.Decimals)
	if md.IconURI != "" {
		fmt.Printf("Icon:     %s\n", md.IconURI)
	}
	if md.ProjectURI != "" {
		fmt.Printf("Project:  %s\n", md.ProjectURI)
	}
}
