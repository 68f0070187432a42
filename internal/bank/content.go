// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ContentFile names one static question document to load.
type ContentFile struct {
	Subject Subject
	Path    string
}

// LoadContent fetches every content file concurrently and concatenates
// the results in the order the files are listed (math first, then
// english, in the stock configuration). Question order within a file is
// preserved. Any fetch or parse failure fails the whole load: without
// content there is no session.
func LoadContent(ctx context.Context, files []ContentFile) ([]Question, error) {
	results := make([][]Question, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			qs, err := loadContentFile(ctx, f)
			if err != nil {
				return fmt.Errorf("load %s content: %w", f.Subject, err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []Question
	for _, qs := range results {
		combined = append(combined, qs...)
	}
	return combined, nil
}

func loadContentFile(ctx context.Context, f ContentFile) ([]Question, error) {
	data, err := readContent(ctx, f.Path)
	if err != nil {
		return nil, err
	}

	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}

	// Entries missing a subject inherit the file's. No further schema
	// validation: malformed entries surface as absent-field questions.
	for i := range qs {
		if qs[i].Subject == "" {
			qs[i].Subject = f.Subject
		}
	}
	return qs, nil
}

func readContent(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path)
}
