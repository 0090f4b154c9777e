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

	"github.com/spf13/cobra"

	"github.com/lokapal-xyz/lit3-ledger/canonical"
	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

// entryFlags collects the metadata flags shared by the archive and
// update commands
type entryFlags struct {
	source       string
	timestamp1   string
	timestamp2   string
	curatorNote  string
	permawebLink string
	license      string
	nftAddress   string
	nftID        uint64
	textFile     string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "artifact source or author")
	cmd.Flags().StringVar(&f.timestamp1, "timestamp1", "", "first free-form timestamp")
	cmd.Flags().StringVar(&f.timestamp2, "timestamp2", "", "second free-form timestamp")
	cmd.Flags().StringVar(&f.curatorNote, "note", "", "curator note")
	cmd.Flags().StringVar(&f.permawebLink, "permaweb", "", "permaweb link")
	cmd.Flags().StringVar(&f.license, "license", "", "license")
	cmd.Flags().StringVar(&f.nftAddress, "nft-address", "", "NFT contract address (hex)")
	cmd.Flags().Uint64Var(&f.nftID, "nft-id", 0, "NFT token id")
	cmd.Flags().StringVar(&f.textFile, "text", "", "source text file to canonicalize and fingerprint")
}

// params builds the ledger entry params from the flags, canonicalizing
// and fingerprinting the source text when one is given. Returns the
// canonical text alongside for blob persistence.
func (f *entryFlags) params(title string) (ledger.EntryParams, []byte, error) {
	params := ledger.EntryParams{
		Title:        title,
		Source:       f.source,
		Timestamp1:   f.timestamp1,
		Timestamp2:   f.timestamp2,
		CuratorNote:  f.curatorNote,
		PermawebLink: f.permawebLink,
		License:      f.license,
		NftID:        f.nftID,
	}
	if f.nftAddress != "" {
		addr, err := ledger.ParseAddress(f.nftAddress)
		if err != nil {
			return params, nil, fmt.Errorf("invalid NFT address: %w", err)
		}
		params.NftAddress = addr
	}
	if f.textFile == "" {
		return params, nil, nil
	}
	text, err := readSource(f.textFile)
	if err != nil {
		return params, nil, err
	}
	canonicalText := canonical.Canonicalize(text)
	params.ContentHash = fingerprint.Sum(canonicalText)
	return params, []byte(canonicalText), nil
}

func archiveCommand() *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "archive <title>",
		Short: "Archive a new entry starting a fresh version chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, logger, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			caller, err := resolveCaller(n.Config())
			if err != nil {
				return err
			}
			params, canonicalText, err := flags.params(args[0])
			if err != nil {
				return err
			}
			index, err := n.ArchiveEntry(caller, params, canonicalText)
			if err != nil {
				return err
			}
			logger.Info(
				"archived entry",
				"index", index,
				"component", programName,
			)
			fmt.Printf("archived entry %d\n", index)
			if !params.ContentHash.IsZero() {
				fmt.Println(params.ContentHash.String())
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func updateCommand() *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "update <title> <deprecate-index>",
		Short: "Archive a new version, deprecating an existing entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deprecateIndex, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid deprecate index %q: %w", args[1], err)
			}
			n, logger, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			caller, err := resolveCaller(n.Config())
			if err != nil {
				return err
			}
			params, canonicalText, err := flags.params(args[0])
			if err != nil {
				return err
			}
			index, err := n.ArchiveUpdatedEntry(
				caller,
				params,
				deprecateIndex,
				canonicalText,
			)
			if err != nil {
				return err
			}
			logger.Info(
				"archived updated entry",
				"index", index,
				"deprecatedIndex", deprecateIndex,
				"component", programName,
			)
			fmt.Printf("archived entry %d (deprecated %d)\n", index, deprecateIndex)
			if !params.ContentHash.IsZero() {
				fmt.Println(params.ContentHash.String())
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
