// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package bank implements the annotation synchronization and
// view-materialization engine: it loads the immutable question content,
// merges in per-owner annotations from the active store, applies
// optimistic mutations with asynchronous persistence, and derives
// filtered, paginated views for whatever surface consumes them.
package bank

// Subject is the question's subject area.
type Subject string

const (
	SubjectMath    Subject = "math"
	SubjectEnglish Subject = "english"
)

// Difficulty is the question's stated difficulty. The content files may
// omit it, in which case it is the empty string.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is one immutable record from the static content source.
// Fields other than ID and Subject may be absent; absent values decode
// to the zero value rather than failing the load.
type Question struct {
	ID            string     `json:"id"`
	Subject       Subject    `json:"subject"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	QuestionImage string     `json:"question_image,omitempty"`
	AnswerImage   string     `json:"answer_image,omitempty"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
}

// AnnotatedQuestion is a Question joined with the active owner's
// annotations. Tags preserve insertion order and contain no duplicates;
// an empty Note means "no note". This is the only record the rest of
// the application reads.
type AnnotatedQuestion struct {
	Question
	Tags []string `json:"tags"`
	Note string   `json:"note"`
}

// HasTag reports whether the question carries tag.
func (q *AnnotatedQuestion) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Owner is the identity bucket under which annotations are stored:
// the synthetic local scope for anonymous use, or a user id.
type Owner struct {
	UserID string
}

// LocalOwner is the anonymous scope.
var LocalOwner = Owner{}

// IsLocal reports whether the owner is the anonymous local scope.
func (o Owner) IsLocal() bool { return o.UserID == "" }

// Key returns the persisted owner key.
func (o Owner) Key() string {
	if o.IsLocal() {
		return "local"
	}
	return o.UserID
}

// TagCount pairs a vocabulary tag with the number of questions carrying
// it, for filter suggestions and stats.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
