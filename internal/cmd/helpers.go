// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/mtreilly/arc-questbank/internal/bank"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// parseSubjects converts --subject values, rejecting unknown subjects
// early instead of silently filtering everything out.
func parseSubjects(values []string) ([]bank.Subject, error) {
	var subjects []bank.Subject
	for _, v := range values {
		switch bank.Subject(v) {
		case bank.SubjectMath, bank.SubjectEnglish:
			subjects = append(subjects, bank.Subject(v))
		default:
			return nil, fmt.Errorf("unknown subject %q (choose math or english)", v)
		}
	}
	return subjects, nil
}

func parseDifficulties(values []string) []bank.Difficulty {
	var difficulties []bank.Difficulty
	for _, v := range values {
		difficulties = append(difficulties, bank.Difficulty(v))
	}
	return difficulties
}
