package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zombor/charge-tracker/internal/extract"
)

// Ledger is the persisted CSV table of charge sessions. The whole
// read-merge-sort-replace sequence runs as one critical section; the tool is
// a batch CLI, so a single mutex is all the serialization needed.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// New creates a Ledger backed by the CSV file at path. The file need not
// exist yet.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Write merges the records into the ledger and returns how many rows were
// actually added. With appendRows set, existing rows are loaded first and
// kept; otherwise the file is rebuilt from the given records alone. Rows
// sharing a dedup key (date, charger_location, start_time) with an existing
// or earlier row are dropped, so writing the same record twice adds it once.
// The result is sorted and atomically replaces the file.
func (l *Ledger) Write(records []extract.Record, appendRows bool) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var combined []extract.Record
	seen := make(map[extract.SessionKey]bool)

	if appendRows {
		existing, err := l.load()
		if err != nil {
			return 0, err
		}
		for _, row := range existing {
			seen[row.Key()] = true
			combined = append(combined, row)
		}
	}

	added := 0
	for _, row := range records {
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		combined = append(combined, row)
		added++
	}

	sortRecords(combined)

	if err := l.replace(combined); err != nil {
		return 0, err
	}
	return added, nil
}

// load reads the existing CSV rows, tolerating a missing file. Columns are
// matched by header name, so reordered or legacy files still load; missing
// columns come back empty.
func (l *Ledger) load() ([]extract.Record, error) {
	file, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]extract.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(row) {
				fields[column] = row[i]
			}
		}
		records = append(records, extract.FromRow(fields))
	}
	return records, nil
}

// replace writes the rows to a temp file in the ledger's directory and
// renames it over the target, so readers never observe a half-written file.
func (l *Ledger) replace(records []extract.Record) error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".charges-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(extract.Columns)
	for _, row := range records {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(row.Values())
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing ledger: %w", writeErr)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing ledger: %w", err)
	}
	return nil
}

// rowTime parses a row's date plus start time. The second return is false
// when the date is missing or unparseable; such rows sort last.
func rowTime(record extract.Record) (time.Time, bool) {
	date := strings.TrimSpace(record.Date)
	if date == "" {
		return time.Time{}, false
	}
	if start := strings.TrimSpace(record.StartTime); start != "" {
		layouts := []string{
			"2006-01-02 15:04",
			"2006-01-02 15:04:05",
			"2006-01-02 3:04 PM",
			"2006-01-02 3:04PM",
		}
		for _, layout := range layouts {
			if dt, err := time.Parse(layout, date+" "+start); err == nil {
				return dt, true
			}
		}
	}
	if dt, err := time.Parse("2006-01-02", date); err == nil {
		return dt, true
	}
	return time.Time{}, false
}

// sortRecords orders rows ascending by session datetime (undated rows
// last), then charger location, then charger name, both case-insensitive.
func sortRecords(records []extract.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		iTime, iOK := rowTime(records[i])
		jTime, jOK := rowTime(records[j])
		if iOK != jOK {
			return iOK
		}
		if iOK && !iTime.Equal(jTime) {
			return iTime.Before(jTime)
		}
		iLoc := strings.ToLower(strings.TrimSpace(records[i].ChargerLocation))
		jLoc := strings.ToLower(strings.TrimSpace(records[j].ChargerLocation))
		if iLoc != jLoc {
			return iLoc < jLoc
		}
		return strings.ToLower(strings.TrimSpace(records[i].ChargerName)) <
			strings.ToLower(strings.TrimSpace(records[j].ChargerName))
	})
}
