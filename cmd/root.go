// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/humanizer/config"
	"github.com/tranvictor/humanizer/networks"
	"github.com/tranvictor/humanizer/ui"
	"github.com/tranvictor/humanizer/util/logger"
)

var (
	appConfig *config.Config
	lggr      logger.Logger = logger.Nop()
	out       ui.UI         = ui.NewTerminalUI()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "humanizer",
	Short: "Describe what an ethereum account operation does in plain words",
	Long: fmt.Sprintf(`Humanizer reads the calls of an account operation (a batch of contract
calls a smart account is about to sign) and describes each of them in plain
words: "Swap 1 ETH for at least 2000 USDC", "Grant approval all USDC for ...".

Calls it cannot decode right away are enriched from external sources:

	1. Unknown function selectors are looked up on a 4byte.directory
	compatible API (%s).

	2. Unknown tokens are read from chain rpc nodes. Each supported network
	has a default public node; set %s<CHAINID> to use your own.

Everything learnt is cached in ~/.humanizer/cache.json so the next run does
not ask again. Settings can also be given in %s.`,
		"HUMANIZER_SIGNATURE_API",
		"HUMANIZER_RPC_",
		config.DefaultPath(),
	),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads the config, the logger and the custom networks every command
// relies on.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.ConfigFile)
	if err != nil {
		return err
	}
	if config.LogLevel != "" {
		cfg.LogLevel = config.LogLevel
	}
	lvl, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	lggr, err = (&logger.Config{Level: lvl, Console: true}).New()
	if err != nil {
		return err
	}

	_, skipped, err := networks.LoadCustomNetworks(cfg.NetworksDir)
	if err != nil {
		lggr.Warnw("failed to load custom networks", "dir", cfg.NetworksDir, "err", err)
	}
	for file, err := range skipped {
		lggr.Warnw("skipping custom network", "file", file, "err", err)
	}

	appConfig = cfg
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", config.DefaultPath(), "Path to the config file (yaml or json).")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "", "Log level: debug, info, warn or error. Overrides HUMANIZER_LOG_LEVEL.")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() { _ = lggr.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
