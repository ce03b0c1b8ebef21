package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanshika/herograph/backend/internal/domain"
)

// ErrMissingColumns indicates the relation header lacks subject, object or relation.
var ErrMissingColumns = errors.New("relation file must have subject, object and relation columns")

// Stats summarises a load.
type Stats struct {
	Rows    int
	Loaded  int
	Skipped int
}

var relationColumns = []string{"subject", "object", "relation"}

// ReadRelations parses relation rows from a CSV stream whose first row is a
// header naming the subject, object and relation columns in any order. Rows
// that are short, unparsable or have an empty subject or object are skipped.
func ReadRelations(r io.Reader) ([]domain.RelationRecord, Stats, error) {
	reader := newReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, Stats{}, nil
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read relation header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := positions[col]; !dup {
			positions[col] = i
		}
	}
	idx := make([]int, len(relationColumns))
	for i, col := range relationColumns {
		pos, ok := positions[col]
		if !ok {
			return nil, Stats{}, ErrMissingColumns
		}
		idx[i] = pos
	}
	width := 0
	for _, pos := range idx {
		if pos+1 > width {
			width = pos + 1
		}
	}

	var (
		records []domain.RelationRecord
		stats   Stats
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return records, stats, fmt.Errorf("read relation row %d: %w", stats.Rows, err)
		}
		if len(row) < width {
			stats.Skipped++
			continue
		}

		rec := domain.RelationRecord{
			Subject:  strings.TrimSpace(row[idx[0]]),
			Object:   strings.TrimSpace(row[idx[1]]),
			Relation: strings.TrimSpace(row[idx[2]]),
		}
		if rec.Subject == "" || rec.Object == "" {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
		stats.Loaded++
	}

	return records, stats, nil
}

// ReadCharacters parses headerless id,name,status,species rows. Rows without
// an id or name are skipped; status and species are optional.
func ReadCharacters(r io.Reader) ([]domain.CharacterRecord, Stats, error) {
	reader := newReader(r)

	var (
		records []domain.CharacterRecord
		stats   Stats
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return records, stats, fmt.Errorf("read character row %d: %w", stats.Rows, err)
		}
		if len(row) < 2 {
			stats.Skipped++
			continue
		}

		rec := domain.CharacterRecord{
			ID:   strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")),
			Name: strings.TrimSpace(row[1]),
		}
		if len(row) > 2 {
			rec.Status = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			rec.Species = strings.TrimSpace(row[3])
		}
		if rec.ID == "" || rec.Name == "" {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
		stats.Loaded++
	}

	return records, stats, nil
}

// WriteRelations writes records with a subject,object,relation header.
func WriteRelations(w io.Writer, records []domain.RelationRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(relationColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Subject, rec.Object, rec.Relation}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCharacters writes headerless id,name,status,species rows.
func WriteCharacters(w io.Writer, records []domain.CharacterRecord) error {
	writer := csv.NewWriter(w)
	for _, rec := range records {
		if err := writer.Write([]string{rec.ID, rec.Name, rec.Status, rec.Species}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func openFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("open data file: %w", os.ErrNotExist)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return file, nil
}
