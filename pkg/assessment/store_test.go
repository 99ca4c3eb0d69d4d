package assessment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalsec/astrarisk/pkg/rating"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	s := NewSession("Polar Imaging")
	s.AddThreat(ThreatEntry{Name: "Jamming", Likelihood: rating.High, Impact: rating.High, Risk: rating.High})
	s.Assets = []Asset{{Category: "Ground", Subcategory: "Stations", Component: "Svalbard GS"}}

	require.NoError(t, store.Save(s, "polar.json"))

	loaded, err := store.Load("polar.json")
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, s.Mission, loaded.Mission)
	require.Len(t, loaded.Threats, 1)
	assert.Equal(t, rating.High, loaded.Threats[0].Risk)
}

func TestStore_CompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	s := NewSession("Compressed Mission")
	s.AddThreat(ThreatEntry{Name: "Replay"})

	require.NoError(t, store.Save(s, "session.json.sz"))

	// The file on disk is snappy-framed, not plain JSON.
	raw, err := os.ReadFile(filepath.Join(dir, "session.json.sz"))
	require.NoError(t, err)
	decoded, err := snappy.Decode(nil, raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Compressed Mission")

	loaded, err := store.Load("session.json.sz")
	require.NoError(t, err)
	assert.Equal(t, s.Mission, loaded.Mission)
}

func TestStore_LoadRejectsInvalidSession(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// Mission is required; an empty object must not validate.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{}`), 0o644))

	_, err = store.Load("bad.json")
	assert.Error(t, err)
}

func TestStore_LoadRejectsCorruptCompression(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "corrupt.json.sz"), []byte("not snappy"), 0o644))

	_, err = store.Load("corrupt.json.sz")
	assert.Error(t, err)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(NewSession("a"), "a.json"))
	require.NoError(t, store.Save(NewSession("b"), "b.json.sz"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.json", "b.json.sz"}, names)
}
