// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"math/big"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/meridianledger/meridian/object"
)

var cmdCreate = &cobra.Command{
	Use:   "create-asset [admin] [symbol] [name]",
	Short: "Create a fungible asset administered by the given account",
	Args:  cobra.ExactArgs(3),
	Run:   createAsset,
}

var flagCreate = struct {
	Decimals   uint8
	Maximum    string
	IconURI    string
	ProjectURI string
}{}

func init() {
	cmdMain.AddCommand(cmdCreate)
	cmdCreate.Flags().Uint8Var(&flagCreate.Decimals, "decimals", 8, "Number of decimal places")
	cmdCreate.Flags().StringVar(&flagCreate.Maximum, "maximum", "", "Maximum supply (default unlimited)")
	cmdCreate.Flags().StringVar(&flagCreate.IconURI, "icon", "", "Icon URI")
	cmdCreate.Flags().StringVar(&flagCreate.ProjectURI, "project", "", "Project URI")
}

func createAsset(_ *cobra.Command, args []string) {
	admin, symbol, name := parseAccount(args[0]), args[1], args[2]

	var maximum *big.Int
	if flagCreate.Maximum != "" {
		var ok bool
		maximum, ok = new(big.Int).SetString(flagCreate.Maximum, 10)
		if !ok {
			fatalf("parse maximum %q", flagCreate.Maximum)
		}
	}

	g, db := openLedger()
	defer db.Close()
	b := g.Begin(true)
	defer b.Discard()

	cref, err := object.Create(b.Database(), admin, []byte(symbol), false)
	checkf(err, "create object")
	ref, err := b.AddFungibility(cref, maximum, name, symbol, flagCreate.Decimals, flagCreate.IconURI, flagCreate.ProjectURI)
	checkf(err, "create asset")

	// The admin account keeps mint, transfer, and burn authority through
	// ownership of the metadata object
	check(b.InitManaged(ref, true, true, true))
	check(b.Commit())

	fmt.Printf("Created %s (%s)\n", name, symbol)
	fmt.Printf("Asset address: %s\n", color.CyanString("%v", ref.Address()))
}
