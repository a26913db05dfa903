// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Remote table names
const (
	TableVotes       = "votos"
	TableDedications = "dedicatorias"
)

// Column headers, as they appear in the remote sheet and in CSV exports
const (
	ColPerformer = "Artista"
	ColScore     = "Puntos"
	ColTime      = "Hora"
	ColAuthor    = "Nombre"
	ColMessage   = "Mensaje"
)

// AnonymousAuthor replaces an empty dedication author.
const AnonymousAuthor = "Anonymous"

// TimeLayout is the wall-clock format stamped on votes (HH:MM:SS).
const TimeLayout = "15:04:05"

var (
	VoteColumns       = []string{ColPerformer, ColScore, ColTime}
	DedicationColumns = []string{ColAuthor, ColMessage}
)

// ColumnsFor returns the header row of a known table, or nil.
func ColumnsFor(table string) []string {
	switch table {
	case TableVotes:
		return append([]string(nil), VoteColumns...)
	case TableDedications:
		return append([]string(nil), DedicationColumns...)
	}
	return nil
}

// Row is one record in its column form.
type Row []string

// Table is an ordered, append-only collection of rows. Insertion order
// defines recency.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable returns an empty table with the known header for name.
func NewTable(name string) Table {
	return Table{Name: name, Columns: ColumnsFor(name), Rows: []Row{}}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy, so callers can append without aliasing.
func (t Table) Clone() Table {
	out := Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append(Row(nil), r...)
	}
	return out
}

// Append returns a copy of t with row added at the end.
func (t Table) Append(row Row) Table {
	out := t.Clone()
	out.Rows = append(out.Rows, append(Row(nil), row...))
	return out
}

// ColumnIndex returns the position of col in the header, or -1.
func (t Table) ColumnIndex(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// VoteRecord is one submitted score for a performer.
type VoteRecord struct {
	PerformerName string `json:"performer"`
	Score         int    `json:"score"`
	Timestamp     string `json:"time"`
}

// Row encodes the vote in VoteColumns order.
func (v VoteRecord) Row() Row {
	return Row{v.PerformerName, strconv.Itoa(v.Score), v.Timestamp}
}

// DedicationRecord is one guest message.
type DedicationRecord struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Row encodes the dedication in DedicationColumns order.
func (d DedicationRecord) Row() Row {
	return Row{d.Author, d.Message}
}

// RowError describes a row that could not be decoded into a record.
type RowError struct {
	Table  string
	Index  int
	Column string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: column %q: %s", e.Table, e.Index, e.Column, e.Reason)
}

// MissingColumnError is returned when a table lacks a required header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing column %q", e.Table, e.Column)
}

// RequireColumns checks that every column in want is present in t's header.
func RequireColumns(t Table, want []string) error {
	for _, c := range want {
		if t.ColumnIndex(c) < 0 {
			return &MissingColumnError{Table: t.Name, Column: c}
		}
	}
	return nil
}

func cell(r Row, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// DecodeVotes decodes every row of a vote table. Rows that fail to decode
// are skipped and reported in the returned error slice.
func DecodeVotes(t Table) ([]VoteRecord, []error, error) {
	if err := RequireColumns(t, VoteColumns); err != nil {
		return nil, nil, err
	}
	pi, si, ti := t.ColumnIndex(ColPerformer), t.ColumnIndex(ColScore), t.ColumnIndex(ColTime)

	votes := make([]VoteRecord, 0, len(t.Rows))
	var bad []error
	for i, r := range t.Rows {
		name := cell(r, pi)
		if name == "" {
			bad = append(bad, &RowError{Table: t.Name, Index: i, Column: ColPerformer, Reason: "empty"})
			continue
		}
		raw := strings.TrimSpace(cell(r, si))
		score, err := strconv.Atoi(raw)
		if err != nil {
			// Sheets hand numbers back as "15.0" once a column has been
			// touched by a float; accept integral floats.
			f, ferr := strconv.ParseFloat(raw, 64)
			if ferr != nil || f != float64(int(f)) {
				bad = append(bad, &RowError{Table: t.Name, Index: i, Column: ColScore, Reason: "not an integer"})
				continue
			}
			score = int(f)
		}
		votes = append(votes, VoteRecord{PerformerName: name, Score: score, Timestamp: cell(r, ti)})
	}
	return votes, bad, nil
}

// DecodeDedications decodes every row of a dedication table.
func DecodeDedications(t Table) ([]DedicationRecord, []error, error) {
	if err := RequireColumns(t, DedicationColumns); err != nil {
		return nil, nil, err
	}
	ai, mi := t.ColumnIndex(ColAuthor), t.ColumnIndex(ColMessage)

	out := make([]DedicationRecord, 0, len(t.Rows))
	var bad []error
	for i, r := range t.Rows {
		msg := cell(r, mi)
		if strings.TrimSpace(msg) == "" {
			bad = append(bad, &RowError{Table: t.Name, Index: i, Column: ColMessage, Reason: "empty"})
			continue
		}
		author := cell(r, ai)
		if author == "" {
			author = AnonymousAuthor
		}
		out = append(out, DedicationRecord{Author: author, Message: msg})
	}
	return out, bad, nil
}
