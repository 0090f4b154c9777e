// Copyright 2025 Lokapal
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/lokapal-xyz/lit3-ledger/internal/config"
	"github.com/lokapal-xyz/lit3-ledger/internal/node"
	"github.com/lokapal-xyz/lit3-ledger/internal/version"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

const (
	programName = "lit3-ledger"
)

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...),
		"component", programName,
	)
}

var (
	globalFlags = struct {
		debug  bool
		caller string
	}{}
	configFile string
)

func commonRun() *slog.Logger {
	// Configure logger
	logLevel := slog.LevelInfo
	addSource := false
	if globalFlags.debug {
		logLevel = slog.LevelDebug
		addSource = true
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     logLevel,
		}),
	)
	slog.SetDefault(logger)
	// Configure max processes with our logger wrapper, toss undo func
	_, err := maxprocs.Set(maxprocs.Logger(slogPrintf))
	if err != nil {
		// If we hit this, something really wrong happened
		slog.Error(err.Error())
		os.Exit(1)
	}
	return logger
}

// openNode builds a running node from the config in the command context
func openNode(cmd *cobra.Command) (*node.Node, *slog.Logger, error) {
	logger := commonRun()
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		cfg = config.GetConfig()
	}
	n, err := node.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return n, logger, nil
}

// resolveCaller determines the identity for gated operations: the --as
// flag when given, otherwise the configured caller, otherwise the
// configured curator.
func resolveCaller(cfg *config.Config) (ledger.Address, error) {
	addr := globalFlags.caller
	if addr == "" {
		addr = cfg.Caller
	}
	if addr == "" {
		addr = cfg.Curator
	}
	if addr == "" {
		return ledger.Address{}, errors.New(
			"no caller identity: use --as, or set caller in the config",
		)
	}
	return ledger.ParseAddress(addr)
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", programName, version.GetVersionString())
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Curated, versioned ledger for literary artifacts",
	}

	// Global flags
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.caller, "as", "", "caller identity (hex address) for gated operations")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	}

	// Subcommands
	rootCmd.AddCommand(fingerprintCommand())
	rootCmd.AddCommand(archiveCommand())
	rootCmd.AddCommand(updateCommand())
	rootCmd.AddCommand(getCommand())
	rootCmd.AddCommand(latestCommand())
	rootCmd.AddCommand(batchCommand())
	rootCmd.AddCommand(totalCommand())
	rootCmd.AddCommand(curatorCommand())
	rootCmd.AddCommand(versionCommand())

	// Execute cobra command
	if err := rootCmd.Execute(); err != nil {
		// NOTE: we purposely don't display the error, since cobra will have already displayed it
		os.Exit(1)
	}
}
