// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeContentFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadContentOrder(t *testing.T) {
	dir := t.TempDir()
	mathPath := writeContentFile(t, dir, "math.json",
		`[{"id":"m1","subject":"math","difficulty":"Easy"},{"id":"m2","subject":"math"}]`)
	engPath := writeContentFile(t, dir, "english.json",
		`[{"id":"e1","subject":"english","difficulty":"Hard"}]`)

	qs, err := LoadContent(context.Background(), []ContentFile{
		{Subject: SubjectMath, Path: mathPath},
		{Subject: SubjectEnglish, Path: engPath},
	})
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}

	want := []string{"m1", "m2", "e1"}
	if len(qs) != len(want) {
		t.Fatalf("question count: got %d, want %d", len(qs), len(want))
	}
	for i, id := range want {
		if qs[i].ID != id {
			t.Fatalf("question %d: got %s, want %s (concatenation order must hold)", i, qs[i].ID, id)
		}
	}
}

func TestLoadContentMalformedEntriesDegrade(t *testing.T) {
	dir := t.TempDir()
	path := writeContentFile(t, dir, "math.json",
		`[{"id":"m1"},{"id":"m2","difficulty":"Medium","correct_answer":"B"}]`)

	qs, err := LoadContent(context.Background(), []ContentFile{
		{Subject: SubjectMath, Path: path},
	})
	if err != nil {
		t.Fatalf("LoadContent: %v", err)
	}

	// Missing fields become zero values; the file's subject fills in.
	if qs[0].Subject != SubjectMath {
		t.Fatalf("subject fallback: got %q, want math", qs[0].Subject)
	}
	if qs[0].Difficulty != "" {
		t.Fatalf("absent difficulty: got %q, want empty", qs[0].Difficulty)
	}
	if qs[1].CorrectAnswer != "B" {
		t.Fatalf("correct answer: got %q, want B", qs[1].CorrectAnswer)
	}
}

func TestLoadContentMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	mathPath := writeContentFile(t, dir, "math.json", `[{"id":"m1"}]`)

	_, err := LoadContent(context.Background(), []ContentFile{
		{Subject: SubjectMath, Path: mathPath},
		{Subject: SubjectEnglish, Path: filepath.Join(dir, "missing.json")},
	})
	if err == nil {
		t.Fatal("LoadContent with a missing file should fail")
	}
}

func TestLoadContentBadJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := writeContentFile(t, dir, "math.json", `{"not":"an array"`)

	_, err := LoadContent(context.Background(), []ContentFile{
		{Subject: SubjectMath, Path: path},
	})
	if err == nil {
		t.Fatal("LoadContent with unparseable JSON should fail")
	}
}
