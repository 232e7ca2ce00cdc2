package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv",
		"student_name,email\n"+
			"Jane Doe,Jane@Example.com\n"+
			"\"García, José\",jose@example.com\n")
	tutors := writeFile(t, dir, "tutors.csv",
		"no_id_name,email,notes\n"+
			"Al Pacino,al@example.com,senior\n"+
			"Pending Tutor,n/a,\n"+
			"Commented Out,#placeholder,\n")

	r := Load(students, tutors)
	require.Equal(t, 3, r.Len())

	entries := r.Entries()
	assert.Equal(t, Entry{Name: "jane doe", ID: "jane@example.com", Kind: KindStudent}, entries[0])
	assert.Equal(t, Entry{Name: "jose garcia", ID: "jose@example.com", Kind: KindStudent}, entries[1])
	assert.Equal(t, Entry{Name: "al pacino", ID: "al@example.com", Kind: KindTutor}, entries[2])
}

func TestLoadFirstOccurrenceWins(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv",
		"student_name,email\nJane Doe,shared@example.com\n")
	tutors := writeFile(t, dir, "tutors.csv",
		"no_id_name,email\nJane D.,SHARED@example.com\n")

	r := Load(students, tutors)
	require.Equal(t, 1, r.Len())
	// Students load before tutors, so the student entry survives.
	assert.Equal(t, KindStudent, r.Entries()[0].Kind)
}

func TestLoadMissingFilesTolerated(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv",
		"student_name,email\nJane Doe,jane@example.com\n")

	r := Load(students, filepath.Join(dir, "no-such-tutors.csv"))
	assert.Equal(t, 1, r.Len())

	// Both missing: empty roster, still not fatal.
	r = Load(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "also-nope.csv"))
	assert.Equal(t, 0, r.Len())
}

func TestLoadSkipsIncompleteRows(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv",
		"student_name,email\n"+
			",missing-name@example.com\n"+
			"Missing Email,\n"+
			"short\n"+
			"Jane Doe,jane@example.com\n")

	r := Load(students, filepath.Join(dir, "missing.csv"))
	assert.Equal(t, 1, r.Len())
}

func TestLoadMalformedHeaderTolerated(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv", "name,mail\nJane Doe,jane@example.com\n")
	tutors := writeFile(t, dir, "tutors.csv",
		"no_id_name,email\nAl Pacino,al@example.com\n")

	// The malformed students table is skipped; tutors still load.
	r := Load(students, tutors)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, KindTutor, r.Entries()[0].Kind)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	students := writeFile(t, dir, "students.csv", "")

	r := Load(students, filepath.Join(dir, "missing.csv"))
	assert.Equal(t, 0, r.Len())
}
