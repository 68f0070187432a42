// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
)

func newNoteCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage question notes",
		Long:  `Set, show, and clear the free-text note on a question.`,
	}

	cmd.AddCommand(newNoteSetCmd(session))
	cmd.AddCommand(newNoteShowCmd(session))
	cmd.AddCommand(newNoteClearCmd(session))

	return cmd
}

func newNoteSetCmd(session *bank.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <question-id> <text...>",
		Short: "Set the note on a question, replacing any prior note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID := args[0]
			if _, ok := session.Question(questionID); !ok {
				return fmt.Errorf("question not found: %s", questionID)
			}

			session.SetNote(questionID, strings.Join(args[1:], " "))
			fmt.Printf("Saved note on %s\n", questionID)
			return nil
		},
	}
}

func newNoteShowCmd(session *bank.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show the note on a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, ok := session.Question(args[0])
			if !ok {
				return fmt.Errorf("question not found: %s", args[0])
			}
			if q.Note == "" {
				fmt.Printf("No note on %s\n", q.ID)
				return nil
			}
			fmt.Println(q.Note)
			return nil
		},
	}
}

func newNoteClearCmd(session *bank.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <question-id>",
		Short: "Clear the note on a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID := args[0]
			if _, ok := session.Question(questionID); !ok {
				return fmt.Errorf("question not found: %s", questionID)
			}

			session.SetNote(questionID, "")
			fmt.Printf("Cleared note on %s\n", questionID)
			return nil
		},
	}
}
