package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/contrack/internal/config"
	"github.com/alexanderramin/contrack/internal/domain"
	"github.com/alexanderramin/contrack/internal/repository"
	"github.com/alexanderramin/contrack/internal/service"
	"github.com/alexanderramin/contrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *testutil.FakeClock) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewFakeClock(cliNow)

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("evt-%03d", n)
	}

	repo := repository.NewKVHistoryRepo(repository.NewSQLiteKVStore(database), "contractions")
	tracker := service.NewTracker(context.Background(), repo,
		service.WithClock(clock),
		service.WithIDGenerator(ids),
	)
	t.Cleanup(tracker.Close)

	cfg := config.DefaultConfig()
	cfg.ChartWindow = 20

	return &App{
		Tracker:       tracker,
		Config:        cfg,
		Now:           clock.Now,
		IsInteractive: func() bool { return false },
	}, clock
}

// seedHistory adds completed events starting at the given minutes past 08:00.
func seedHistory(t *testing.T, app *App, minutes ...int) {
	t.Helper()
	base := time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC)
	for _, m := range minutes {
		start := base.Add(time.Duration(m) * time.Minute)
		end := start.Add(45 * time.Second)
		_, err := app.Tracker.Add(context.Background(), start, &end)
		require.NoError(t, err)
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCLI_BareInvocationPrintsHelpWhenNotInteractive(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "contrack")
	assert.Contains(t, out, "summary")
}

func TestCLI_AddCompleted(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "add", "--start", "2025-03-15T08:00:00Z", "--end", "2025-03-15T08:01:05Z")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "1m 05s")

	history := app.Tracker.History()
	require.Len(t, history, 1)
	require.NotNil(t, history[0].DurationSeconds)
	assert.Equal(t, 65, *history[0].DurationSeconds)
}

func TestCLI_AddOpenEnded(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "add", "--start", "-10m")
	require.NoError(t, err)
	assert.Contains(t, out, "In progress")

	history := app.Tracker.History()
	require.Len(t, history, 1)
	assert.Nil(t, history[0].EndTime)
	assert.True(t, history[0].StartTime.Equal(cliNow.Add(-10*time.Minute)))
}

func TestCLI_AddRequiresStart(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start")
}

func TestCLI_AddRejectsEndBeforeStart(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "add", "--start", "2025-03-15T08:05:00Z", "--end", "2025-03-15T08:00:00Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, app.Tracker.History())
}

func TestCLI_AddRejectsUnparseableTime(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "add", "--start", "yesterday-ish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized time")
}

func TestCLI_EditByPrefixKeepsUnsetFields(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)
	before := app.Tracker.History()[0]

	_, err := executeCmd(t, app, "edit", "evt-001", "--end", "2025-03-15T08:02:00Z")
	require.NoError(t, err)

	after := app.Tracker.History()[0]
	assert.True(t, after.StartTime.Equal(before.StartTime))
	require.NotNil(t, after.DurationSeconds)
	assert.Equal(t, 120, *after.DurationSeconds)
}

func TestCLI_EditByRowNumber(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 10)

	// #1 is the oldest entry.
	_, err := executeCmd(t, app, "edit", "#1", "--start", "2025-03-15T07:59:00Z")
	require.NoError(t, err)

	history := app.Tracker.History()
	assert.Equal(t, "evt-001", history[1].ID)
	assert.True(t, history[1].StartTime.Equal(time.Date(2025, 3, 15, 7, 59, 0, 0, time.UTC)))
}

func TestCLI_EditOpenClearsEnd(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	out, err := executeCmd(t, app, "edit", "evt-001", "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	e := app.Tracker.History()[0]
	assert.Nil(t, e.EndTime)
	assert.Nil(t, e.DurationSeconds)
}

func TestCLI_EditOpenAndEndConflict(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	_, err := executeCmd(t, app, "edit", "evt-001", "--open", "--end", "now")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestCLI_EditUnknownEvent(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	_, err := executeCmd(t, app, "edit", "nope", "--open")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCLI_EditValidationLeavesEntry(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)
	before := app.Tracker.History()

	_, err := executeCmd(t, app, "edit", "evt-001", "--end", "2025-03-15T07:00:00Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, before, app.Tracker.History())
}

func TestCLI_RemoveDeletesOne(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 10, 20)

	out, err := executeCmd(t, app, "rm", "evt-002")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	history := app.Tracker.History()
	require.Len(t, history, 2)
	assert.Equal(t, "evt-003", history[0].ID)
	assert.Equal(t, "evt-001", history[1].ID)
}

func TestCLI_RemoveUnknownChangesNothing(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	_, err := executeCmd(t, app, "delete", "#7")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, app.Tracker.History(), 1)
}

func TestCLI_ListEmpty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contractions recorded yet")
}

func TestCLI_ListShowsRows(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 10)

	out, err := executeCmd(t, app, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "CONTRACTION HISTORY (2)")
	assert.Contains(t, out, "evt-001")
	assert.Contains(t, out, "evt-002")
	assert.Contains(t, out, "45s")
}

func TestCLI_ListLimit(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 10, 20)

	out, err := executeCmd(t, app, "list", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "evt-003")
	assert.NotContains(t, out, "evt-001")
	assert.Contains(t, out, "2 older not shown")
}

func TestCLI_ListJSONMatchesWireFormat(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	out, err := executeCmd(t, app, "list", "--json")
	require.NoError(t, err)

	decoded, err := repository.DecodeHistory(out)
	require.NoError(t, err)
	assert.Equal(t, app.Tracker.History(), decoded)
	assert.Contains(t, out, `"startTime":"2025-03-15T08:00:00.000Z"`)
	assert.Contains(t, out, `"durationSeconds":45`)
}

func TestCLI_Summary(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 5, 12)

	out, err := executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "45s")
	assert.Contains(t, out, "6m 00s")
}

func TestCLI_SummaryEmptyShowsNA(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "N/A")
}

func TestCLI_SummaryTrend(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 5)

	out, err := executeCmd(t, app, "summary", "--trend")
	require.NoError(t, err)
	assert.Contains(t, out, "DURATION")
	assert.Contains(t, out, "INTERVAL")
	assert.Contains(t, out, "5.0 min")
}

func TestCLI_ClearRefusesWithoutYes(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0)

	_, err := executeCmd(t, app, "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Len(t, app.Tracker.History(), 1)
}

func TestCLI_ClearWithYes(t *testing.T) {
	app, _ := testApp(t)
	seedHistory(t, app, 0, 10)

	out, err := executeCmd(t, app, "clear", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.Contains(t, out, "2 contractions")
	assert.Empty(t, app.Tracker.History())
}

func TestCLI_ChangesPersistAcrossTrackers(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewKVHistoryRepo(repository.NewSQLiteKVStore(database), "contractions")
	clock := testutil.NewFakeClock(cliNow)

	first := &App{Tracker: service.NewTracker(context.Background(), repo, service.WithClock(clock)), Now: clock.Now}
	_, err := executeCmd(t, first, "add", "--start", "-5m", "--end", "-4m")
	require.NoError(t, err)

	second := &App{Tracker: service.NewTracker(context.Background(), repo, service.WithClock(clock)), Now: clock.Now}
	history := second.Tracker.History()
	require.Len(t, history, 1)
	assert.Equal(t, 60, *history[0].DurationSeconds)
}
