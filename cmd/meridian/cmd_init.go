// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Initialize the working directory",
	Args:  cobra.NoArgs,
	Run:   initWorkDir,
}

func init() {
	cmdMain.AddCommand(cmdInit)
}

func initWorkDir(_ *cobra.Command, _ []string) {
	workDir := viper.GetString("work-dir")
	checkf(os.MkdirAll(filepath.Join(workDir, "data"), 0o700), "create %s", workDir)

	cfgPath := filepath.Join(workDir, "meridian.toml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg := fmt.Sprintf("log-level = %q\nlog-format = %q\n", flagMain.LogLevel, flagMain.LogFormat)
		checkf(os.WriteFile(cfgPath, []byte(cfg), 0o600), "write %s", cfgPath)
	}

	// Opening the database creates it if it does not exist
	_, db := openLedger()
	check(db.Close())

	fmt.Printf("Initialized %s\n", workDir)
}
