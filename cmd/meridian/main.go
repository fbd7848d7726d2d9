// Copyright 2024 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/meridianledger/meridian/fungible"
	"gitlab.com/meridianledger/meridian/internal/logging"
	"gitlab.com/meridianledger/meridian/pkg/database/keyvalue/badger"
	"gitlab.com/meridianledger/meridian/pkg/types/address"
)

var currentUser = func() *user.User {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr
}()

var defaultWorkDir = filepath.Join(currentUser.HomeDir, ".meridian")

var cmdMain = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian fungible-asset ledger",
	Run:   printUsageAndExit1,
}

var flagMain struct {
	WorkDir   string
	LogLevel  string
	LogFormat string
}

func init() {
	cmdMain.PersistentFlags().StringVarP(&flagMain.WorkDir, "work-dir", "w", defaultWorkDir, "Working directory for configuration and data")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmdMain.PersistentFlags().StringVar(&flagMain.LogFormat, "log-format", logging.LogFormatPlain, "Log format: plain or json")

	viper.SetEnvPrefix("MERIDIAN")
	viper.AutomaticEnv()
	check(viper.BindPFlag("work-dir", cmdMain.PersistentFlags().Lookup("work-dir")))
	check(viper.BindPFlag("log-level", cmdMain.PersistentFlags().Lookup("log-level")))
	check(viper.BindPFlag("log-format", cmdMain.PersistentFlags().Lookup("log-format")))
}

func main() {
	cmdMain.Execute()
}

// openLedger opens the ledger over the work directory's badger database.
// Close the returned database when done.
func openLedger() (*fungible.Ledger, *badger.Database) {
	workDir := viper.GetString("work-dir")
	logger, err := logging.New(os.Stderr, viper.GetString("log-format"), viper.GetString("log-level"))
	checkf(err, "configure logging")

	viper.SetConfigName("meridian")
	viper.AddConfigPath(workDir)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			checkf(err, "read config")
		}
	}

	db, err := badger.New(filepath.Join(workDir, "data"), badger.WithLogger(logger))
	checkf(err, "open database %s", filepath.Join(workDir, "data"))

	return fungible.NewLedger(db, fungible.WithLogger(logger)), db
}

// parseAccount accepts a hex address or a human-readable account name.
func parseAccount(s string) address.Address {
	if strings.HasPrefix(s, "0x") {
		addr, err := address.Parse(s)
		checkf(err, "parse address %q", s)
		return addr
	}
	return address.Named(s)
}

func parseAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	checkf(err, "parse amount %q", s)
	return v
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}

func checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		fatalf(format+": %v", append(otherArgs, err)...)
	}
}
