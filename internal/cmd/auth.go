// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
)

func newAuthCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect the active identity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active annotation scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := session.Owner()
			if owner.IsLocal() {
				fmt.Println("Anonymous: annotations are stored locally on this machine.")
				fmt.Printf("Session file: %s\n", cfg.SessionFile)
				return nil
			}
			fmt.Printf("Signed in as: %s\n", session.Email())
			fmt.Printf("Scope:        %s\n", owner.Key())
			return nil
		},
	})

	return cmd
}
