package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSettings implements store.SettingsRepo in memory.
type memSettings struct {
	values map[string]string
	err    error
}

func newMemSettings() *memSettings {
	return &memSettings{values: make(map[string]string)}
}

func (m *memSettings) Get(_ context.Context, key string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSettings) Set(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *memSettings) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

func TestStoreProvider_Trims(t *testing.T) {
	repo := newMemSettings()
	repo.values[Key] = "  alice \n"

	id, err := StoreProvider{Repo: repo}.UserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestStoreProvider_AbsentAndBlank(t *testing.T) {
	repo := newMemSettings()
	p := StoreProvider{Repo: repo}

	id, err := p.UserID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)

	repo.values[Key] = "   "
	id, err = p.UserID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id, "whitespace-only id counts as absent")
}

func TestStoreProvider_Error(t *testing.T) {
	boom := errors.New("disk I/O error")
	repo := newMemSettings()
	repo.err = boom

	_, err := StoreProvider{Repo: repo}.UserID(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOverride(t *testing.T) {
	ctx := context.Background()

	id, err := Override{ID: " bob ", Inner: Static("alice")}.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", id)

	id, err = Override{ID: "  ", Inner: Static("alice")}.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", id)

	id, err = Override{}.UserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSaveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := newMemSettings()

	require.NoError(t, Save(ctx, repo, "  carol "))
	assert.Equal(t, "carol", repo.values[Key])

	assert.ErrorIs(t, Save(ctx, repo, " "), ErrEmpty)
	assert.Equal(t, "carol", repo.values[Key], "blank save must not overwrite")

	require.NoError(t, Clear(ctx, repo))
	_, ok := repo.values[Key]
	assert.False(t, ok)
}
