package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and can be told to fail.
type fakeAPI struct {
	listIDs   []uint64
	addErr    error
	removeErr error
	addCalls  []uint64
	rmCalls   []uint64
}

func (f *fakeAPI) ListFavorites(ctx context.Context) ([]uint64, error) {
	return f.listIDs, nil
}

func (f *fakeAPI) AddFavorite(ctx context.Context, trailID uint64) error {
	f.addCalls = append(f.addCalls, trailID)
	return f.addErr
}

func (f *fakeAPI) RemoveFavorite(ctx context.Context, trailID uint64) error {
	f.rmCalls = append(f.rmCalls, trailID)
	return f.removeErr
}

func TestSetLoadReplacesState(t *testing.T) {
	api := &fakeAPI{listIDs: []uint64{1, 2, 3}}
	s := NewSet(api)

	require.NoError(t, s.Add(context.Background(), 99))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.IsFavorite(1))
	assert.False(t, s.IsFavorite(99))
}

func TestSetAddRollsBackOnServerError(t *testing.T) {
	api := &fakeAPI{addErr: errors.New("boom")}
	s := NewSet(api)

	err := s.Add(context.Background(), 5)
	require.Error(t, err)
	assert.False(t, s.IsFavorite(5), "failed add must not leave local state changed")
	assert.Equal(t, []uint64{5}, api.addCalls)
}

func TestSetRemoveRollsBackOnServerError(t *testing.T) {
	api := &fakeAPI{listIDs: []uint64{5}, removeErr: errors.New("boom")}
	s := NewSet(api)
	require.NoError(t, s.Load(context.Background()))

	err := s.Remove(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, s.IsFavorite(5), "failed remove must restore membership")
}

func TestSetToggle(t *testing.T) {
	api := &fakeAPI{}
	s := NewSet(api)
	ctx := context.Background()

	require.NoError(t, s.Toggle(ctx, 7))
	assert.True(t, s.IsFavorite(7))
	require.NoError(t, s.Toggle(ctx, 7))
	assert.False(t, s.IsFavorite(7))

	assert.Equal(t, []uint64{7}, api.addCalls)
	assert.Equal(t, []uint64{7}, api.rmCalls)
}

func TestSetClear(t *testing.T) {
	api := &fakeAPI{listIDs: []uint64{1, 2}}
	s := NewSet(api)
	require.NoError(t, s.Load(context.Background()))

	s.Clear()
	assert.Zero(t, s.Len())
	assert.False(t, s.IsFavorite(1))
}
