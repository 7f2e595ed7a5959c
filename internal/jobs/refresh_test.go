// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/config"
	"github.com/cabernetwork/provider-video-123tv/internal/epg"
	"github.com/cabernetwork/provider-video-123tv/internal/tv123"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

type stubFetcher struct {
	feeds map[string]*tv123.Feed
}

func (f *stubFetcher) ChannelGuide(_ context.Context, feedID string) (*tv123.Feed, error) {
	feed, ok := f.feeds[feedID]
	if !ok {
		return nil, tv123.ErrFeedUnavailable
	}
	return feed, nil
}

type stubResolver struct {
	details map[string]*epg.ProgramDetail
}

func (r *stubResolver) Lookup(_ context.Context, programID string) (*epg.ProgramDetail, error) {
	d, ok := r.details[programID]
	if !ok {
		return nil, epg.ErrDetailNotFound
	}
	return d, nil
}

type stubLister struct {
	lineup map[string]channels.Record
	err    error
}

func (l *stubLister) List(context.Context, string) (map[string]channels.Record, error) {
	return l.lineup, l.err
}

type recordingStore struct {
	mu    sync.Mutex
	saves map[string][]epg.NormalizedProgram // keyed by day (2006-01-02)
	err   error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{saves: make(map[string][]epg.NormalizedProgram)}
}

func (s *recordingStore) SaveProgramList(_ context.Context, _ string, day time.Time, programs []epg.NormalizedProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saves[day.UTC().Format("2006-01-02")] = programs
	return nil
}

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg := config.FromEnv()
	cfg.Timezone = "UTC"
	return cfg
}

func testDeps(t *testing.T) (Deps, *recordingStore) {
	t.Helper()

	feedX := "X"
	dayStart := epg.DayStart(testNow, 0)
	store := newRecordingStore()
	deps := Deps{
		Config: testConfig(t),
		Fetcher: &stubFetcher{feeds: map[string]*tv123.Feed{
			"X": {Items: map[string][]tv123.RawEvent{
				strconv.FormatInt(dayStart.Unix(), 10): {
					{ID: "p1", Start: testNow.Unix() + 3600, End: testNow.Unix() + 7200},
				},
			}},
		}},
		Resolver: &stubResolver{details: map[string]*epg.ProgramDetail{
			"p1": {ID: "p1", Title: "News"},
		}},
		Channels: &stubLister{lineup: map[string]channels.Record{
			"1": {ID: "1", DisplayName: "One", Enabled: true, EPGID: &feedX},
			"2": {ID: "2", DisplayName: "Two", Enabled: true}, // no feed id
		}},
		Store: store,
		Clock: func() time.Time { return testNow },
	}
	return deps, store
}

func TestRefresh_SavesFreshDayOnly(t *testing.T) {
	deps, store := testDeps(t)

	status, err := Refresh(context.Background(), deps)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.NotEmpty(t, status.RunID)
	assert.Equal(t, 3, status.Days)
	// 1 real program + 24 placeholders for the feedless channel, day 0 only.
	assert.Equal(t, 25, status.Programs)

	require.Len(t, store.saves, 1)
	day0 := store.saves["2026-08-29"]
	require.Len(t, day0, 25)

	counts := map[string]int{}
	for _, p := range day0 {
		counts[p.Channel]++
	}
	assert.Equal(t, 1, counts["1"])
	assert.Equal(t, 24, counts["2"])
}

func TestRefresh_WritesXMLTV(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Config.XMLTVPath = filepath.Join(t.TempDir(), "guide.xml")

	_, err := Refresh(context.Background(), deps)
	require.NoError(t, err)

	data, err := os.ReadFile(deps.Config.XMLTVPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "News")
	assert.Contains(t, string(data), `channel="2"`)
}

func TestRefresh_ChannelListFailureIsFatal(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Channels = &stubLister{err: errors.New("db locked")}

	_, err := Refresh(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list channels")
}

func TestRefresh_SaveFailureDegrades(t *testing.T) {
	deps, store := testDeps(t)
	store.err = errors.New("disk full")

	status, err := Refresh(context.Background(), deps)
	require.NoError(t, err)
	assert.Equal(t, 25, status.Programs)
}

func TestRefresh_EmptyProviderProducesNothing(t *testing.T) {
	deps, store := testDeps(t)
	deps.Fetcher = &stubFetcher{feeds: map[string]*tv123.Feed{
		"X": {Items: map[string][]tv123.RawEvent{}},
	}}

	status, err := Refresh(context.Background(), deps)
	require.NoError(t, err)
	assert.Zero(t, status.Programs)
	assert.Empty(t, store.saves)
}

func TestDaysToPull(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, DaysToPull(3))
	assert.Equal(t, []int{0}, DaysToPull(1))
	assert.Equal(t, []int{0}, DaysToPull(0))
	assert.Equal(t, []int{0, 1, 2}, DaysToPull(9))
}
