// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
	"github.com/mtreilly/arc-questbank/internal/output"
)

func newStatsCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show bank and annotation statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			questions := session.Questions()

			bySubject := make(map[bank.Subject]int)
			byDifficulty := make(map[bank.Difficulty]int)
			tagged := 0
			noted := 0
			for _, q := range questions {
				bySubject[q.Subject]++
				byDifficulty[q.Difficulty]++
				if len(q.Tags) > 0 {
					tagged++
				}
				if q.Note != "" {
					noted++
				}
			}

			if out.Is(output.FormatJSON) {
				return output.JSON(map[string]any{
					"total":         len(questions),
					"by_subject":    bySubject,
					"by_difficulty": byDifficulty,
					"tagged":        tagged,
					"noted":         noted,
					"vocabulary":    session.Vocabulary(),
					"scope":         session.Owner().Key(),
				})
			}

			fmt.Printf("Questions: %d\n", len(questions))
			for _, s := range []bank.Subject{bank.SubjectMath, bank.SubjectEnglish} {
				if bySubject[s] > 0 {
					fmt.Printf("  %-8s %d\n", s, bySubject[s])
				}
			}
			for _, d := range []bank.Difficulty{bank.DifficultyEasy, bank.DifficultyMedium, bank.DifficultyHard} {
				if byDifficulty[d] > 0 {
					fmt.Printf("  %-8s %d\n", d, byDifficulty[d])
				}
			}
			fmt.Printf("Tagged:    %d\n", tagged)
			fmt.Printf("Noted:     %d\n", noted)
			fmt.Printf("Tags:      %d distinct\n", len(session.Vocabulary()))
			fmt.Printf("Scope:     %s\n", session.Owner().Key())
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)

	return cmd
}
