// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package resttab is a small client for PostgREST-style table endpoints:
// row-level select with equality filters and range windows, insert,
// delete by filter, and upsert on a conflict key. The annotation sync
// engine uses it as its remote key-value table service.
package resttab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues requests against one table service base URL.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the service at baseURL authenticated by
// apiKey. The key is sent both as the service api key and as the bearer
// token, matching hosted table services' anonymous-role convention.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Filters are column equality constraints applied to a request.
type Filters map[string]string

func (c *Client) endpoint(table string, filters Filters) string {
	q := url.Values{}
	for col, val := range filters {
		q.Set(col, "eq."+val)
	}
	u := c.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("table api error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Select fetches rows matching filters into dest (a pointer to a slice).
// from and to are inclusive row offsets sent as a Range header; pass
// from=0, to=-1 for an unbounded select.
func (c *Client) Select(ctx context.Context, table string, filters Filters, from, to int, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(table, filters), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if to >= 0 {
		req.Header.Set("Range-Unit", "items")
		req.Header.Set("Range", fmt.Sprintf("%d-%d", from, to))
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal rows: %w", err)
	}
	return nil
}

// Insert adds one row to table.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	return c.write(ctx, http.MethodPost, c.endpoint(table, nil), row, "return=minimal")
}

// Upsert writes row to table, overwriting any existing row sharing the
// conflict key columns (comma-separated).
func (c *Client) Upsert(ctx context.Context, table string, row any, conflictCols string) error {
	u := c.endpoint(table, nil)
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	u += sep + "on_conflict=" + url.QueryEscape(conflictCols)
	return c.write(ctx, http.MethodPost, u, row, "resolution=merge-duplicates,return=minimal")
}

// Delete removes all rows matching filters.
func (c *Client) Delete(ctx context.Context, table string, filters Filters) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(table, filters), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")
	_, err = c.do(req)
	return err
}

func (c *Client) write(ctx context.Context, method, url string, row any, prefer string) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", prefer)
	_, err = c.do(req)
	return err
}
