// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabernetwork/provider-video-123tv/internal/epg"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"), DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPrograms_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	programs := NewPrograms(db, "TV123")
	ctx := context.Background()

	season := 5
	episode := 3
	detail := epg.ProgramDetail{
		ID:          "p1",
		Title:       "News",
		Description: "Evening news",
		Season:      &season,
		Episode:     &episode,
		Genres:      []string{"News"},
	}
	require.NoError(t, programs.Put(ctx, detail))

	got, err := programs.Lookup(ctx, "p1")
	require.NoError(t, err)
	if diff := cmp.Diff(detail, *got); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestPrograms_LookupMissing(t *testing.T) {
	db := openTestDB(t)
	programs := NewPrograms(db, "TV123")

	_, err := programs.Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, epg.ErrDetailNotFound)
}

func TestPrograms_NamespaceIsolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	a := NewPrograms(db, "TV123")
	b := NewPrograms(db, "OTHER")
	require.NoError(t, a.Put(ctx, epg.ProgramDetail{ID: "p1", Title: "A"}))

	_, err := b.Lookup(ctx, "p1")
	assert.ErrorIs(t, err, epg.ErrDetailNotFound)
}

func TestGuide_SaveAndLoad(t *testing.T) {
	db := openTestDB(t)
	guide := NewGuide(db, "TV123")
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	start := day.Add(20 * time.Hour)
	list := []epg.NormalizedProgram{{
		Channel: "1",
		Start:   start,
		Stop:    start.Add(time.Hour),
		Length:  60,
		Title:   "News",
		Desc:    "n",
	}}
	require.NoError(t, guide.SaveProgramList(ctx, "default", day, list))

	got, err := guide.ProgramList(ctx, "default", day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "News", got[0].Title)
	assert.True(t, got[0].Start.Equal(start))

	// Saving again replaces the listing.
	require.NoError(t, guide.SaveProgramList(ctx, "default", day, nil))
	got, err = guide.ProgramList(ctx, "default", day)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGuide_DayNotFound(t *testing.T) {
	db := openTestDB(t)
	guide := NewGuide(db, "TV123")

	_, err := guide.ProgramList(context.Background(), "default", time.Now())
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestGuide_NullFieldsSurviveStorage(t *testing.T) {
	db := openTestDB(t)
	guide := NewGuide(db, "TV123")
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	cc := false
	list := []epg.NormalizedProgram{{Channel: "1", Title: "News", CC: &cc}}
	require.NoError(t, guide.SaveProgramList(ctx, "default", day, list))

	got, err := guide.ProgramList(ctx, "default", day)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].CC)
	assert.False(t, *got[0].CC)
	assert.Nil(t, got[0].VideoQuality)
	assert.Nil(t, got[0].SEProgID)
}
