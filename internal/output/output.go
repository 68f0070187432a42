// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output provides table and JSON rendering for CLI commands.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Format names a supported output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Options carries the output format selection for a command.
type Options struct {
	format string
}

// AddFlags registers the --output flag with the given default.
func (o *Options) AddFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format (table, json)")
}

// Resolve validates the selected format.
func (o *Options) Resolve() error {
	switch Format(o.format) {
	case FormatTable, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table or json)", o.format)
	}
}

// Is reports whether the selected format equals f.
func (o *Options) Is(f Format) bool {
	return Format(o.format) == f
}

// JSON writes v as indented JSON to stdout.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table accumulates rows for aligned rendering.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table to stdout.
func (t *Table) Render() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, h := range t.headers {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
