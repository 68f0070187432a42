// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
	"github.com/mtreilly/arc-questbank/internal/output"
)

func newShowCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	var out output.Options
	var revealAnswer bool

	cmd := &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show one question in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			q, ok := session.Question(args[0])
			if !ok {
				return fmt.Errorf("question not found: %s", args[0])
			}

			if out.Is(output.FormatJSON) {
				return output.JSON(q)
			}

			fmt.Printf("Question %s\n", q.ID)
			fmt.Printf("Subject:    %s\n", strings.ToUpper(string(q.Subject)))
			difficulty := string(q.Difficulty)
			if difficulty == "" {
				difficulty = "Unknown Difficulty"
			}
			fmt.Printf("Difficulty: %s\n", difficulty)
			if q.QuestionImage != "" {
				fmt.Printf("Image:      %s\n", q.QuestionImage)
			} else {
				fmt.Println("Image:      (missing)")
			}
			if len(q.Tags) > 0 {
				fmt.Printf("Tags:       %s\n", strings.Join(q.Tags, ", "))
			}
			if q.Note != "" {
				fmt.Printf("Note:       %s\n", q.Note)
			}

			if revealAnswer {
				answer := q.CorrectAnswer
				if answer == "" {
					answer = "See details"
				}
				fmt.Printf("\nCorrect Answer: %s\n", answer)
				if q.AnswerImage != "" {
					fmt.Printf("Explanation:    %s\n", q.AnswerImage)
				}
			}

			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().BoolVarP(&revealAnswer, "answer", "a", false, "Reveal the correct answer")

	return cmd
}
