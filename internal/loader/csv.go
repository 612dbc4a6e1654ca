// internal/loader/csv.go
package loader

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/model"
)

// Columns is the header written by WriteCSV and understood by ReadCSV.
var Columns = []string{"commit", "author", "file", "type", "line", "depth", "length", "date", "time", "timezone", "datetime"}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Preview describes the raw table shape before aggregation.
type Preview struct {
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// String renders the preview like the page's debug block.
func (p Preview) String() string {
	return fmt.Sprintf("Rows: %d\nColumns: %s", p.Rows, strings.Join(p.Columns, ", "))
}

// Result is the outcome of a load: the coerced rows and what had to be degraded.
type Result struct {
	Rows     []model.LineChange
	Preview  Preview
	Degraded int
}

// ReadCSV reads a loc dataset. Columns are matched by header name; fields that fail
// to parse become null instead of failing the row. A row with the wrong number of
// fields aborts the read.
func ReadCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return &Result{Preview: Preview{Columns: []string{}}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	res := &Result{Preview: Preview{Columns: header}}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(res.Rows)+1, err)
		}

		row, degraded := coerceRow(
			field(rec, "commit"), field(rec, "author"), field(rec, "file"), field(rec, "type"),
			field(rec, "line"), field(rec, "depth"), field(rec, "length"),
			field(rec, "date"), field(rec, "time"), field(rec, "timezone"), field(rec, "datetime"),
		)
		res.Rows = append(res.Rows, row)
		res.Degraded += degraded
	}
	res.Preview.Rows = len(res.Rows)
	return res, nil
}

func coerceRow(commit, author, file, typ, line, depth, length, date, clock, tz, datetime string) (model.LineChange, int) {
	degraded := 0
	num := func(s string) sql.NullInt64 {
		if s == "" {
			return sql.NullInt64{}
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				degraded++
				return sql.NullInt64{}
			}
			n = int64(f)
		}
		return sql.NullInt64{Int64: n, Valid: true}
	}

	row := model.LineChange{
		CommitID: commit,
		Author:   author,
		File:     file,
		Type:     typ,
		Line:     num(line),
		Depth:    num(depth),
		Length:   num(length),
	}

	if date != "" {
		if t, ok := parseDatetime(date + "T00:00" + tz); ok {
			row.Date = sql.NullTime{Time: t, Valid: true}
		} else {
			degraded++
		}
	}

	composed := datetime
	if composed == "" && date != "" && clock != "" {
		composed = date + "T" + clock + tz
	}
	if composed != "" {
		if t, ok := parseDatetime(composed); ok {
			row.Datetime = sql.NullTime{Time: t, Valid: true}
		} else {
			degraded++
		}
	}
	return row, degraded
}

func parseDatetime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WriteCSV writes rows with the Columns header.
func WriteCSV(w io.Writer, rows []model.LineChange) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	for _, r := range rows {
		var date, clock, tz, dt string
		if r.Datetime.Valid {
			t := r.Datetime.Time
			date = t.Format("2006-01-02")
			clock = t.Format("15:04:05")
			tz = t.Format("-07:00")
			dt = t.Format(time.RFC3339)
		}
		rec := []string{
			r.CommitID, r.Author, r.File, r.Type,
			nullInt(r.Line), nullInt(r.Depth), nullInt(r.Length),
			date, clock, tz, dt,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func nullInt(n sql.NullInt64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}
