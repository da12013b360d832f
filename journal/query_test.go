package journal

import (
	"testing"
	"time"

	"github.com/rustyeddy/hedger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	created := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	expected := sampleRun("R123", created)

	require.NoError(t, j.RecordRun(expected))

	actual, err := j.GetRun("R123")
	require.NoError(t, err)

	assert.Equal(t, expected.RunID, actual.RunID)
	assert.True(t, actual.Created.Equal(expected.Created))
	assert.Equal(t, expected.Seed, actual.Seed)
	assert.Equal(t, expected.Params, actual.Params)
	assert.Equal(t, expected.Days, actual.Days)
	assert.Equal(t, expected.RollDay, actual.RollDay)
	assert.InDelta(t, expected.OpeningPutValue, actual.OpeningPutValue, 1e-9)
	assert.InDelta(t, expected.FinalValue, actual.FinalValue, 1e-9)
	assert.InDelta(t, expected.ReturnPct, actual.ReturnPct, 1e-9)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRunsOrdered(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(sampleRun("late", base.Add(2*time.Hour))))
	require.NoError(t, j.RecordRun(sampleRun("early", base)))
	require.NoError(t, j.RecordRun(sampleRun("middle", base.Add(time.Hour))))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "early", runs[0].RunID)
	assert.Equal(t, "middle", runs[1].RunID)
	assert.Equal(t, "late", runs[2].RunID)
}

func TestWriteLedgerRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	l := ledger.New(2)
	for _, d := range sampleDays() {
		require.NoError(t, l.Append(d))
	}
	l.Seal()

	run := sampleRun("RUN-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, WriteLedger(j, run, l))

	days, err := j.ListDays("RUN-1")
	require.NoError(t, err)
	require.Len(t, days, 2)

	want := sampleDays()
	for i := range want {
		assert.Equal(t, want[i].Day, days[i].Day)
		assert.True(t, want[i].Date.Equal(days[i].Date))
		assert.Equal(t, want[i].Action, days[i].Action)
		assert.Equal(t, want[i].Description, days[i].Description)
		assert.InDelta(t, want[i].TimeToExpiry, days[i].TimeToExpiry, 1e-12)
		assert.InDelta(t, want[i].CumulativeInterest, days[i].CumulativeInterest, 1e-9)
		assert.InDelta(t, want[i].TotalValue, days[i].TotalValue, 1e-9)
	}

	empty, err := j.ListDays("missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWriteLedgerStopsOnRunError(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	run := sampleRun("DUP", time.Now())
	require.NoError(t, j.RecordRun(run))

	l := ledger.New(0)
	err := WriteLedger(j, run, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record run DUP")
}

func TestRunRecordSummary(t *testing.T) {
	run := sampleRun("01RUN", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	s := run.Summary()
	assert.Equal(t, 2, s.Days)
	assert.Equal(t, 1, s.RollDay)
	assert.Equal(t, run.Params.RollStrike, s.FinalStrike)
	assert.Equal(t, run.FinalValue, s.FinalValue)
	assert.True(t, s.HasReturn)

	run.RollDay = -1
	assert.Equal(t, run.Params.PutStrike, run.Summary().FinalStrike)

	run.InitialValue = 0
	assert.False(t, run.Summary().HasReturn)
}
