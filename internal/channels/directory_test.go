// SPDX-License-Identifier: MIT

package channels_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabernetwork/provider-video-123tv/internal/channels"
	"github.com/cabernetwork/provider-video-123tv/internal/store"
)

func TestDirectory_RoundTrip(t *testing.T) {
	db, err := store.Open(t.TempDir()+"/ch.sqlite", store.DefaultConfig())
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	dir := channels.NewDirectory(db, "TV123")
	ctx := context.Background()

	feedA := "A"
	require.NoError(t, dir.Put(ctx, "default", channels.Record{ID: "1", DisplayName: "One", Enabled: true, EPGID: &feedA}))
	require.NoError(t, dir.Put(ctx, "default", channels.Record{ID: "2", DisplayName: "Two", Enabled: false}))

	lineup, err := dir.List(ctx, "default")
	require.NoError(t, err)
	require.Len(t, lineup, 2)

	require.NotNil(t, lineup["1"].EPGID)
	assert.Equal(t, "A", *lineup["1"].EPGID)
	assert.True(t, lineup["1"].Enabled)

	assert.Nil(t, lineup["2"].EPGID)
	assert.False(t, lineup["2"].Enabled)

	// Another instance sees nothing.
	other, err := dir.List(ctx, "second")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSortedIDs(t *testing.T) {
	m := map[string]channels.Record{"10": {}, "2": {}, "1": {}}
	assert.Equal(t, []string{"1", "10", "2"}, channels.SortedIDs(m))
}
