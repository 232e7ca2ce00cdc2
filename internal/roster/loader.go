package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// tutorNotApplicable is the sentinel identifier used in the tutors table
// for rows without an account.
const tutorNotApplicable = "n/a"

// Load builds a roster from the students and tutors CSV files. Students
// are loaded first; an identifier seen twice keeps its first entry. A
// missing or malformed file contributes nothing and is never fatal, so
// the monitor can run with whichever tables are deployed.
func Load(studentsPath, tutorsPath string) *Roster {
	var entries []Entry
	seen := make(map[string]struct{})

	n, err := loadFile(studentsPath, "student_name", KindStudent, seen, &entries)
	if err != nil {
		slog.Error("failed to load student roster, skipping", "path", studentsPath, "error", err.Error())
	} else {
		slog.Info("loaded student roster", "path", studentsPath, "entries", n)
	}

	n, err = loadFile(tutorsPath, "no_id_name", KindTutor, seen, &entries)
	if err != nil {
		slog.Error("failed to load tutor roster, skipping", "path", tutorsPath, "error", err.Error())
	} else {
		slog.Info("loaded tutor roster", "path", tutorsPath, "entries", n)
	}

	return &Roster{entries: entries}
}

// loadFile reads one CSV table with a header row, appending valid rows to
// entries. Returns the number of entries added.
func loadFile(path, nameColumn string, kind Kind, seen map[string]struct{}, entries *[]Entry) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("roster file missing, skipping", "path", path)
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx, emailIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			nameIdx = i
		case "email":
			emailIdx = i
		}
	}
	if nameIdx < 0 || emailIdx < 0 {
		return 0, fmt.Errorf("missing %q or %q column", nameColumn, "email")
	}

	added := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row is skipped, not fatal.
			slog.Warn("skipping malformed roster row", "path", path, "error", err.Error())
			continue
		}
		if nameIdx >= len(row) || emailIdx >= len(row) {
			continue
		}

		name := row[nameIdx]
		id := strings.ToLower(strings.TrimSpace(row[emailIdx]))
		if name == "" || id == "" {
			continue
		}
		if id == tutorNotApplicable || strings.HasPrefix(id, "#") {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		*entries = append(*entries, Entry{
			Name: Normalize(name),
			ID:   id,
			Kind: kind,
		})
		added++
	}

	return added, nil
}
