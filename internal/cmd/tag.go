// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
	"github.com/mtreilly/arc-questbank/internal/output"
)

func newTagCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage question tags",
		Long:  `Add, remove, and list tags on questions in the active scope.`,
	}

	cmd.AddCommand(newTagAddCmd(session))
	cmd.AddCommand(newTagRemoveCmd(session))
	cmd.AddCommand(newTagListCmd(session))

	return cmd
}

func newTagAddCmd(session *bank.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <question-id> <tag> [tag...]",
		Short: "Add tags to a question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID := args[0]
			if _, ok := session.Question(questionID); !ok {
				return fmt.Errorf("question not found: %s", questionID)
			}

			for _, tag := range args[1:] {
				session.AddTag(questionID, tag)
				fmt.Printf("Added tag %q to %s\n", tag, questionID)
			}
			return nil
		},
	}
}

func newTagRemoveCmd(session *bank.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <question-id> <tag> [tag...]",
		Short: "Remove tags from a question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID := args[0]
			if _, ok := session.Question(questionID); !ok {
				return fmt.Errorf("question not found: %s", questionID)
			}

			for _, tag := range args[1:] {
				session.RemoveTag(questionID, tag)
				fmt.Printf("Removed tag %q from %s\n", tag, questionID)
			}
			return nil
		},
	}
}

func newTagListCmd(session *bank.Session) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tag vocabulary with usage counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			counts := session.TagCounts()
			if len(counts) == 0 {
				fmt.Println("No tags created yet.")
				return nil
			}

			if out.Is(output.FormatJSON) {
				return output.JSON(counts)
			}

			// Sort by count descending for display; the vocabulary
			// itself keeps first-appearance order.
			sort.SliceStable(counts, func(i, j int) bool {
				return counts[i].Count > counts[j].Count
			})

			total := session.Size()
			table := output.NewTable("Tag", "Questions", "Share")
			for _, tc := range counts {
				share := ""
				if total > 0 {
					share = fmt.Sprintf("%.1f%%", float64(tc.Count)/float64(total)*100)
				}
				table.AddRow(tc.Tag, fmt.Sprintf("%d", tc.Count), share)
			}
			table.Render()

			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)

	return cmd
}
