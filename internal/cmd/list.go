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

func newListCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	var out output.Options
	var subjects []string
	var difficulties []string
	var tags []string
	var page int
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions with filters and pagination",
		Long: `List questions from the bank, filtered and paginated.

Tag filters combine with AND: a question must carry every selected tag.
Empty subject or difficulty selections show all.

Examples:
  arc-questbank list                         # First page, all questions
  arc-questbank list --subject math          # Math only
  arc-questbank list --tag algebra --tag easy-mistake
  arc-questbank list --page 2 --page-size 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}
			if !config.ValidPageSize(pageSize) {
				return fmt.Errorf("page size %d not supported (choose one of %v)", pageSize, config.PageSizeOptions)
			}
			parsed, err := parseSubjects(subjects)
			if err != nil {
				return err
			}

			view := bank.NewView(pageSize)
			view.SetSubjects(parsed...)
			view.SetDifficulties(parseDifficulties(difficulties)...)
			view.SetTags(tags...)

			questions := session.Questions()
			p := view.Materialize(questions)
			if page > 1 {
				if !view.SetPage(page) {
					return fmt.Errorf("page %d out of range (1-%d)", page, p.TotalPages)
				}
				p = view.Materialize(questions)
			}

			if out.Is(output.FormatJSON) {
				return output.JSON(p)
			}

			if p.TotalItems == 0 {
				fmt.Println("No questions match the current filters.")
				return nil
			}

			table := output.NewTable("ID", "Subject", "Difficulty", "Tags", "Note")
			for _, q := range p.Questions {
				note := ""
				if q.Note != "" {
					note = "yes"
				}
				table.AddRow(
					q.ID,
					string(q.Subject),
					string(q.Difficulty),
					truncate(strings.Join(q.Tags, ", "), 30),
					note,
				)
			}
			table.Render()

			fmt.Printf("\nTotal %d problems (page %d of %d)\n", p.TotalItems, p.Number, p.TotalPages)
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().StringArrayVarP(&subjects, "subject", "s", nil, "Filter by subject (repeatable)")
	cmd.Flags().StringArrayVarP(&difficulties, "difficulty", "d", nil, "Filter by difficulty (repeatable)")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Filter by tag, AND-combined (repeatable)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number (1-indexed)")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", cfg.PageSize, "Questions per page")

	return cmd
}
