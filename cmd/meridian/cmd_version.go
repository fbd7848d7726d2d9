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

// Version is set by the linker.
var Version = "v0.1.0-dev"

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(*cobra.Command, []string) {
		fmt.Println(Version)
	},
}

func init() {
	cmdMain.AddCommand(cmdVersion)
}
