// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
)

// NewRootCmd creates the root command for arc-questbank. The session is
// started before the first subcommand runs and drained after it
// finishes, so fire-and-forget annotation writes reach the store before
// the process exits.
func NewRootCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	root := &cobra.Command{
		Use:   "arc-questbank",
		Short: "Browse and annotate your exam question bank",
		Long: `Browse a fixed bank of exam questions and attach personal tags and
notes to individual questions.

Annotations are stored locally while anonymous, or under your account
when a session is active; the two scopes are independent.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return session.Start(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer session.Close()
			return session.Flush(cmd.Context())
		},
	}

	root.AddCommand(newListCmd(cfg, session))
	root.AddCommand(newShowCmd(cfg, session))
	root.AddCommand(newTagCmd(cfg, session))
	root.AddCommand(newNoteCmd(cfg, session))
	root.AddCommand(newStatsCmd(cfg, session))
	root.AddCommand(newAuthCmd(cfg, session))
	root.AddCommand(newServeCmd(cfg, session))

	return root
}
