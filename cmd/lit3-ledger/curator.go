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

	"github.com/spf13/cobra"

	"github.com/lokapal-xyz/lit3-ledger/ledger"
)

func curatorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curator",
		Short: "Governance operations for curator identity",
	}
	cmd.AddCommand(curatorShowCommand())
	cmd.AddCommand(curatorTransferCommand())
	cmd.AddCommand(curatorAcceptCommand())
	return cmd
}

func curatorShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current curator and any pending transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			state := n.Ledger().CuratorState()
			fmt.Printf("curator: %s\n", state.Curator)
			if !state.PendingCurator.IsZero() {
				fmt.Printf("pending: %s\n", state.PendingCurator)
			}
			return nil
		},
	}
}

func curatorTransferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <address>",
		Short: "Nominate a new curator (requires acceptance to complete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nominee, err := ledger.ParseAddress(args[0])
			if err != nil {
				return err
			}
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			caller, err := resolveCaller(n.Config())
			if err != nil {
				return err
			}
			if err := n.InitiateCuratorTransfer(caller, nominee); err != nil {
				return err
			}
			fmt.Printf("transfer initiated: %s\n", nominee)
			return nil
		},
	}
}

func curatorAcceptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accept",
		Short: "Accept a pending curator transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer n.Close()
			caller, err := resolveCaller(n.Config())
			if err != nil {
				return err
			}
			if err := n.AcceptCuratorTransfer(caller); err != nil {
				return err
			}
			fmt.Printf("transfer accepted: %s\n", n.Ledger().CuratorState().Curator)
			return nil
		},
	}
}
