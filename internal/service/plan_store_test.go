package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanStoreGetAbsent(t *testing.T) {
	store := NewPlanStore(&stubRepo{})

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, snapshot)
}

func TestPlanStoreRoundTrip(t *testing.T) {
	repo := &stubRepo{}
	store := NewPlanStore(repo)

	require.NoError(t, store.Set(context.Background(), validPlanJSON))

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, validPlanJSON, snapshot.RawText)
	require.NotNil(t, snapshot.Plan)
	require.Equal(t, "base week", snapshot.Plan.WeeklySummary)
}

func TestPlanStoreServesRawWhenTextDoesNotParse(t *testing.T) {
	repo := &stubRepo{}
	store := NewPlanStore(repo)

	require.NoError(t, store.Set(context.Background(), "free-form coach notes, not JSON"))

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "free-form coach notes, not JSON", snapshot.RawText)
	require.Nil(t, snapshot.Plan)
}

func TestPlanStoreSetReplacesWholesale(t *testing.T) {
	repo := &stubRepo{}
	store := NewPlanStore(repo)

	require.NoError(t, store.Set(context.Background(), `{"weeklySummary":"old","days":[]}`))
	require.NoError(t, store.Set(context.Background(), `{"weeklySummary":"new","days":[]}`))

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "new", snapshot.Plan.WeeklySummary)
}

func TestPlanStoreClearDropsSessionState(t *testing.T) {
	stored := validPlanJSON
	repo := &stubRepo{planText: &stored}
	store := NewPlanStore(repo)

	require.NoError(t, store.Clear(context.Background()))

	snapshot, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, snapshot)
	require.Nil(t, repo.transcript)
	require.Nil(t, repo.activities)
}
