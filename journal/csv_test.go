package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string) {
	t.Helper()

	dir := t.TempDir()
	runsPath := filepath.Join(dir, "runs.csv")
	daysPath := filepath.Join(dir, "days.csv")

	j, err := NewCSV(runsPath, daysPath)
	require.NoError(t, err)
	return j, runsPath, daysPath
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	j, runsPath, daysPath := newTestCSV(t)
	assert.NoError(t, j.Close())

	runs := readRows(t, runsPath)
	days := readRows(t, daysPath)

	require.Len(t, runs, 1)
	require.Len(t, days, 1)
	assert.Equal(t, runsHeader, runs[0])
	assert.Equal(t, daysHeader, days[0])
	assert.Equal(t, "run_id", days[0][0])
	assert.Equal(t, "total_value", days[0][10])
}

func TestCSVJournalRecordDay(t *testing.T) {
	t.Parallel()

	j, _, daysPath := newTestCSV(t)

	rec := sampleDays()[1]
	require.NoError(t, j.RecordDay("R1", rec))
	require.NoError(t, j.Close())

	rows := readRows(t, daysPath)
	require.Len(t, rows, 2)

	want := []string{
		"R1",
		"1",
		"2023-01-03",
		"42.750000",
		"0.353175",
		"40.000000",
		"1520.250000",
		"402.100000",
		"3.968254",
		"7.936508",
		"44262.310000",
		"ROLL",
		"Day 1: sold puts at K=$35.00 for $402.10, bought puts at K=$40.00 for $1520.25",
	}
	assert.Equal(t, want, rows[1])
}

func TestCSVJournalRecordRun(t *testing.T) {
	t.Parallel()

	j, runsPath, _ := newTestCSV(t)

	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, j.RecordRun(sampleRun("R9", created)))
	require.NoError(t, j.Close())

	rows := readRows(t, runsPath)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "R9", row[0])
	assert.Equal(t, created.Format(time.RFC3339), row[1])
	assert.Equal(t, "42", row[2])
	assert.Contains(t, row[3], `"put_strike":35`)
	assert.Equal(t, "2", row[4])
	assert.Equal(t, "854.202082", row[5])
	assert.Equal(t, "41210.500000", row[7])
	assert.Equal(t, "1", row[11])
	assert.Equal(t, "0.872000", row[12])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewCSV(filepath.Join(dir, "missing", "runs.csv"), filepath.Join(dir, "days.csv"))
	assert.Error(t, err)
}

func TestNewCSVHeaderWriteFails(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}

	runsPath := filepath.Join(t.TempDir(), "runs.csv")
	j, err := NewCSV(runsPath, "/dev/full")
	assert.Error(t, err)
	assert.Nil(t, j)

	rows := readRows(t, runsPath)
	require.Len(t, rows, 1)
	assert.Equal(t, runsHeader, rows[0])
}
