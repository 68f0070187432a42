// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package resttab

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	UserID     string `json:"user_id"`
	QuestionID string `json:"question_id"`
	Tag        string `json:"tag"`
}

func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *http.Request, *[]byte) {
	t.Helper()
	var captured http.Request
	var capturedBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		captured.URL = r.URL
		if r.Body != nil {
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			capturedBody = b
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &captured, &capturedBody
}

func TestSelectSendsAuthAndRange(t *testing.T) {
	ts, captured, _ := recordingServer(t, http.StatusOK, `[{"user_id":"u1","question_id":"q1","tag":"algebra"}]`)

	c := New(ts.URL, "anon-key")
	var rows []row
	err := c.Select(context.Background(), "tags", Filters{"user_id": "u1"}, 0, 999, &rows)
	require.NoError(t, err)

	assert.Equal(t, "anon-key", captured.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", captured.Header.Get("Authorization"))
	assert.Equal(t, "items", captured.Header.Get("Range-Unit"))
	assert.Equal(t, "0-999", captured.Header.Get("Range"))
	assert.Equal(t, "/rest/v1/tags", captured.URL.Path)
	assert.Equal(t, "eq.u1", captured.URL.Query().Get("user_id"))

	require.Len(t, rows, 1)
	assert.Equal(t, "algebra", rows[0].Tag)
}

func TestSelectUnboundedOmitsRange(t *testing.T) {
	ts, captured, _ := recordingServer(t, http.StatusOK, `[]`)

	c := New(ts.URL, "anon-key")
	var rows []row
	err := c.Select(context.Background(), "notes", nil, 0, -1, &rows)
	require.NoError(t, err)

	assert.Empty(t, captured.Header.Get("Range"))
	assert.Empty(t, captured.Header.Get("Range-Unit"))
}

func TestInsertPostsRow(t *testing.T) {
	ts, captured, body := recordingServer(t, http.StatusCreated, "")

	c := New(ts.URL, "anon-key")
	err := c.Insert(context.Background(), "tags", row{UserID: "u1", QuestionID: "q1", Tag: "algebra"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/rest/v1/tags", captured.URL.Path)
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.Equal(t, "return=minimal", captured.Header.Get("Prefer"))
	assert.JSONEq(t, `{"user_id":"u1","question_id":"q1","tag":"algebra"}`, string(*body))
}

func TestUpsertSetsConflictKeyAndPrefer(t *testing.T) {
	ts, captured, _ := recordingServer(t, http.StatusCreated, "")

	c := New(ts.URL, "anon-key")
	err := c.Upsert(context.Background(), "notes",
		map[string]string{"user_id": "u1", "question_id": "q1", "note": "hi"},
		"user_id,question_id")
	require.NoError(t, err)

	assert.Equal(t, "user_id,question_id", captured.URL.Query().Get("on_conflict"))
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", captured.Header.Get("Prefer"))
}

func TestDeleteAppliesFilters(t *testing.T) {
	ts, captured, _ := recordingServer(t, http.StatusNoContent, "")

	c := New(ts.URL, "anon-key")
	err := c.Delete(context.Background(), "tags", Filters{
		"user_id":     "u1",
		"question_id": "q1",
		"tag":         "algebra",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, captured.Method)
	q := captured.URL.Query()
	assert.Equal(t, "eq.u1", q.Get("user_id"))
	assert.Equal(t, "eq.q1", q.Get("question_id"))
	assert.Equal(t, "eq.algebra", q.Get("tag"))
}

func TestNon2xxSurfacesBody(t *testing.T) {
	ts, _, _ := recordingServer(t, http.StatusForbidden, `{"message":"permission denied"}`)

	c := New(ts.URL, "anon-key")
	var rows []row
	err := c.Select(context.Background(), "tags", nil, 0, -1, &rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "permission denied")
}
