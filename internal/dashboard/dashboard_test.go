// ABOUTME: Tests for dashboard view building.
// ABOUTME: Covers defaults, reproducibility, sessions, alerts and comparisons.
package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/move/internal/export"
	"github.com/harperreed/move/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 6, 15, 9, 30, 15, 0, time.UTC)

func newBuilder() *Builder {
	b := NewBuilder(models.DefaultCatalog())
	b.now = func() time.Time { return at }
	return b
}

func ptr[T any](v T) *T { return &v }

func TestBuildDefaults(t *testing.T) {
	b := newBuilder()

	v, err := b.Build("hse", Options{})
	require.NoError(t, err)

	assert.Equal(t, 30, v.Rows)
	assert.Equal(t, 30, v.Table.Len())
	assert.Equal(t, 10, v.Recent.Len())
	assert.True(t, v.At.Equal(at))
	assert.Len(t, v.Indicators, 3)
	assert.Empty(t, v.SessionName())
	assert.Empty(t, v.Comparisons)
	assert.Equal(t, "report_hse.csv", v.FileName(export.FormatCSV))
}

func TestBuildReproducible(t *testing.T) {
	b := newBuilder()
	opts := Options{Seed: ptr(uint64(42)), At: at}

	a, err := b.Build("evo", opts)
	require.NoError(t, err)
	c, err := b.Build("evo", opts)
	require.NoError(t, err)

	for i := range a.Table.Columns {
		assert.Equal(t, a.Table.Columns[i].Values, c.Table.Columns[i].Values)
	}
	assert.Equal(t, "42", a.Query().Get("seed"))
	assert.Equal(t, "30", a.Query().Get("rows"))
}

func TestBuildRowsOverride(t *testing.T) {
	b := newBuilder()

	v, err := b.Build("evo", Options{Rows: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, v.Table.Len())
	assert.Equal(t, 3, v.Recent.Len())

	_, err = b.Build("evo", Options{Rows: ptr(0)})
	assert.True(t, errors.Is(err, models.ErrInvalidConfig), "got %v", err)
}

func TestBuildUnknown(t *testing.T) {
	b := newBuilder()

	_, err := b.Build("nope", Options{})
	assert.True(t, errors.Is(err, models.ErrUnknownProfile))

	_, err = b.Build("coach", Options{Session: "Sessione 9"})
	assert.True(t, errors.Is(err, models.ErrUnknownSession))

	_, err = b.Build("hse", Options{Session: "Sessione 1"})
	assert.True(t, errors.Is(err, models.ErrUnknownSession))

	_, err = b.Build("coach", Options{Compare: []string{"Sessione 1", "Sessione 7"}})
	assert.True(t, errors.Is(err, models.ErrUnknownSession))
}

func TestCoachSessions(t *testing.T) {
	b := newBuilder()
	seed := ptr(uint64(7))

	first, err := b.Build("coach", Options{Seed: seed})
	require.NoError(t, err)
	assert.Equal(t, "Sessione 1", first.SessionName())
	assert.Equal(t, 10, first.Table.Len())
	assert.Equal(t, 10, first.Recent.Len())
	assert.Equal(t, "report_sessione_1.pdf", first.FileName(export.FormatPDF))
	assert.Equal(t, "Sessione 1", first.Query().Get("session"))

	second, err := b.Build("coach", Options{Seed: seed, Session: "Sessione 2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Table.Columns[0].Values, second.Table.Columns[0].Values)

	// The comparison of the first view regenerates session 2 from the same seed.
	require.Len(t, first.Comparisons, 3)
	cmp := first.Comparisons[0]
	assert.Equal(t, models.ColPostureScore, cmp.Column)
	require.Len(t, cmp.Sessions, 2)
	assert.Equal(t, "Sessione 2", cmp.Sessions[1].Session)

	col, _ := second.Table.Column(models.ColPostureScore)
	maxV := col.Values[0]
	for _, x := range col.Values {
		maxV = max(maxV, x)
	}
	assert.Equal(t, maxV, cmp.Sessions[1].Summary.Max)
}

func TestCoachCompareSelection(t *testing.T) {
	b := newBuilder()

	v, err := b.Build("coach", Options{Compare: []string{"Sessione 1", "Sessione 2", "Sessione 3"}})
	require.NoError(t, err)

	groups, ok := v.ComparisonGroups(models.ColSymmetry)
	require.True(t, ok)
	assert.Len(t, groups, 3)
	for _, g := range groups {
		s := g.Summary
		assert.True(t, s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max, "%+v", s)
	}

	_, ok = v.ComparisonGroups(models.ColHeartRate)
	assert.False(t, ok)
	assert.Len(t, v.Query()["compare"], 3)
}

func TestCoachAlert(t *testing.T) {
	b := newBuilder()

	var raised, quiet bool
	for seed := uint64(0); seed < 50 && !(raised && quiet); seed++ {
		v, err := b.Build("coach", Options{Seed: ptr(seed), Rows: ptr(1)})
		require.NoError(t, err)

		col, _ := v.Table.Column(models.ColRiskMovements)
		if col.Values[0] > 0 {
			assert.Equal(t, v.Profile.Alert.Message, v.Alert)
			raised = true
		} else {
			assert.Empty(t, v.Alert)
			quiet = true
		}
	}
	assert.True(t, raised && quiet, "expected both alert states across seeds")
}

func TestMeta(t *testing.T) {
	v, err := newBuilder().Build("coach", Options{Seed: ptr(uint64(5)), Session: "Sessione 3"})
	require.NoError(t, err)

	m := v.Meta()
	assert.Equal(t, "coach", m.Dashboard)
	assert.Equal(t, "Sessione 3", m.Session)
	assert.Equal(t, uint64(5), m.Seed)
	assert.True(t, m.GeneratedAt.Equal(at))
}

func TestDescribe(t *testing.T) {
	infos := Describe(models.DefaultCatalog())
	require.Len(t, infos, 3)

	hse := infos[0]
	assert.Equal(t, "hse", hse.Name)
	assert.Equal(t, 30, hse.Rows)
	assert.Equal(t, []string{"trend", "posture", "lumbar"}, hse.Charts)
	assert.Empty(t, hse.Sessions)
	assert.Len(t, hse.Formats, len(export.AllFormats))
	assert.Len(t, hse.Columns, len(models.HSEProfile().Columns))

	assert.Equal(t, []string{"Sessione 1", "Sessione 2", "Sessione 3"}, infos[1].Sessions)
}

func TestSnapshot(t *testing.T) {
	v, err := newBuilder().Build("coach", Options{Seed: ptr(uint64(12)), Session: "Sessione 3"})
	require.NoError(t, err)

	s := v.Snapshot()
	assert.Equal(t, "coach", s.Dashboard)
	assert.Equal(t, "Sessione 3", s.Session)
	assert.Equal(t, uint64(12), s.Seed)
	assert.Equal(t, v.Table.Names(), s.Columns)
	require.Len(t, s.Records, 10)
	assert.Equal(t, v.Table.Record(0), s.Records[0])
	assert.Equal(t, v.Indicators, s.Indicators)
}
