// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"

	"github.com/mtreilly/arc-questbank/internal/resttab"
)

const (
	tagsTable  = "tags"
	notesTable = "notes"

	// tagPageSize bounds one tag-relation select. Loads page until a
	// short page or an error ends the walk.
	tagPageSize = 1000
)

type tagRow struct {
	UserID     string `json:"user_id"`
	QuestionID string `json:"question_id"`
	Tag        string `json:"tag"`
}

type noteRow struct {
	UserID     string `json:"user_id"`
	QuestionID string `json:"question_id"`
	Note       string `json:"note"`
}

// RemoteStore persists account-scoped annotations in the remote table
// service: tags(user_id, question_id, tag) and notes(user_id,
// question_id, note) with (user_id, question_id) as the note upsert key.
type RemoteStore struct {
	client *resttab.Client
}

// NewRemoteStore creates a remote annotation store over client.
func NewRemoteStore(client *resttab.Client) *RemoteStore {
	return &RemoteStore{client: client}
}

// LoadTags walks the owner's tag relation in fixed-size pages. A failed
// page ends the walk and returns the rows accumulated so far along with
// the error; the caller decides whether a partial load is usable.
func (s *RemoteStore) LoadTags(ctx context.Context, owner Owner) (map[string][]string, error) {
	tags := make(map[string][]string)
	filters := resttab.Filters{"user_id": owner.Key()}

	for from := 0; ; from += tagPageSize {
		var rows []tagRow
		err := s.client.Select(ctx, tagsTable, filters, from, from+tagPageSize-1, &rows)
		if err != nil {
			return tags, err
		}
		for _, r := range rows {
			// Set semantics: the service may hold duplicate rows from
			// at-least-once inserts.
			if !containsTag(tags[r.QuestionID], r.Tag) {
				tags[r.QuestionID] = append(tags[r.QuestionID], r.Tag)
			}
		}
		if len(rows) < tagPageSize {
			return tags, nil
		}
	}
}

func (s *RemoteStore) LoadNotes(ctx context.Context, owner Owner) (map[string]string, error) {
	notes := make(map[string]string)
	var rows []noteRow
	err := s.client.Select(ctx, notesTable, resttab.Filters{"user_id": owner.Key()}, 0, -1, &rows)
	if err != nil {
		return notes, err
	}
	for _, r := range rows {
		notes[r.QuestionID] = r.Note
	}
	return notes, nil
}

// AddTag inserts the tag row without checking for an existing duplicate.
// Duplicate rows are tolerated because readers derive set membership,
// not row counts.
func (s *RemoteStore) AddTag(ctx context.Context, owner Owner, questionID, tag string) error {
	return s.client.Insert(ctx, tagsTable, tagRow{
		UserID:     owner.Key(),
		QuestionID: questionID,
		Tag:        tag,
	})
}

func (s *RemoteStore) RemoveTag(ctx context.Context, owner Owner, questionID, tag string) error {
	return s.client.Delete(ctx, tagsTable, resttab.Filters{
		"user_id":     owner.Key(),
		"question_id": questionID,
		"tag":         tag,
	})
}

func (s *RemoteStore) SetNote(ctx context.Context, owner Owner, questionID, note string) error {
	return s.client.Upsert(ctx, notesTable, noteRow{
		UserID:     owner.Key(),
		QuestionID: questionID,
		Note:       note,
	}, "user_id,question_id")
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
