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
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/lokapal-xyz/lit3-ledger/canonical"
	"github.com/lokapal-xyz/lit3-ledger/fingerprint"
)

// readSource loads a source text file for fingerprinting. A missing
// file is reported distinctly from other read failures, always naming
// the failing path.
func readSource(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("source file not found: %s", path)
		}
		return "", fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	return string(buf), nil
}

func fingerprintCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "fingerprint <file>",
		Short: "Canonicalize a text file and print its content fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(args[0])
			if err != nil {
				return err
			}
			canonicalText := canonical.Canonicalize(text)
			if verbose {
				fmt.Print(canonicalText)
			}
			fmt.Println(fingerprint.Sum(canonicalText).String())
			return nil
		},
	}
	cmd.Flags().
		BoolVarP(&verbose, "verbose", "v", false, "print the canonical text before the fingerprint")
	return cmd
}
