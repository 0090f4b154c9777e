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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

func printEntry(entry ledger.Entry, verbose bool) {
	status := "active"
	if entry.Deprecated {
		status = "deprecated"
	}
	fmt.Printf(
		"[%d] %s (v%d, %s)\n",
		entry.Index,
		entry.Title,
		entry.VersionIndex,
		status,
	)
	if !verbose {
		return
	}
	fields := []struct {
		name  string
		value string
	}{
		{"source", entry.Source},
		{"timestamp1", entry.Timestamp1},
		{"timestamp2", entry.Timestamp2},
		{"note", entry.CuratorNote},
		{"permaweb", entry.PermawebLink},
		{"license", entry.License},
	}
	for _, field := range fields {
		if field.value != "" {
			fmt.Printf("    %s: %s\n", field.name, field.value)
		}
	}
	if !entry.NftAddress.IsZero() {
		fmt.Printf("    nft: %s #%d\n", entry.NftAddress, entry.NftID)
	}
	if !entry.ContentHash.IsZero() {
		fmt.Printf("    contentHash: %s\n", entry.ContentHash)
	}
	if !entry.ArchivedAt.IsZero() {
		fmt.Printf("    archivedAt: %s\n", entry.ArchivedAt.Format("2006-01-02 15:04:05 MST"))
	}
}

func parseIndexArg(arg string) (uint64, error) {
	index, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", arg, err)
	}
	return index, nil
}

func getCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "get <index>",
		Short: "Display the entry at the given ledger index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndexArg(args[0])
			if err != nil {
				return err
			}
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			entry, err := n.Ledger().GetEntry(index)
			if err != nil {
				return err
			}
			printEntry(entry, verbose)
			return nil
		},
	}
	cmd.Flags().
		BoolVarP(&verbose, "verbose", "v", false, "print all entry fields")
	return cmd
}

func latestCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "latest [count]",
		Short: "Display the most recently archived entries, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := uint64(10)
			if len(args) > 0 {
				var err error
				count, err = parseIndexArg(args[0])
				if err != nil {
					return err
				}
			}
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			for _, entry := range n.Ledger().LatestEntries(count) {
				printEntry(entry, verbose)
			}
			return nil
		},
	}
	cmd.Flags().
		BoolVarP(&verbose, "verbose", "v", false, "print all entry fields")
	return cmd
}

func batchCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "batch <start> <count>",
		Short: "Display a range of entries in ascending index order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseIndexArg(args[0])
			if err != nil {
				return err
			}
			count, err := parseIndexArg(args[1])
			if err != nil {
				return err
			}
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			entries, err := n.Ledger().EntriesBatch(start, count)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				printEntry(entry, verbose)
			}
			return nil
		},
	}
	cmd.Flags().
		BoolVarP(&verbose, "verbose", "v", false, "print all entry fields")
	return cmd
}

func totalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Display the total number of archived entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			fmt.Println(n.Ledger().TotalEntries())
			return nil
		},
	}
}
