package fieldstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "jumps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundtrip(t *testing.T) {
	s := openTemp(t)
	rec := Record{
		P:     2,
		Poly:  "x^2-2",
		E:     2,
		F:     1,
		Lower: "(2, 2)",
		Upper: "(2, 2)",
	}
	require.NoError(t, s.Put(rec))

	got, ok, err := s.Get(2, "x^2-2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.P, got.P)
	assert.Equal(t, rec.Poly, got.Poly)
	assert.Equal(t, rec.E, got.E)
	assert.Equal(t, rec.F, got.F)
	assert.Equal(t, rec.Lower, got.Lower)
	assert.Equal(t, rec.Upper, got.Upper)
	assert.False(t, got.UnderRefined)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetMiss(t *testing.T) {
	s := openTemp(t)
	_, ok, err := s.Get(5, "x^3-5")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutUpserts(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Put(Record{P: 3, Poly: "x^6+3*x^2+3", E: 6, F: 1, Lower: "old", Upper: "old"}))
	require.NoError(t, s.Put(Record{P: 3, Poly: "x^6+3*x^2+3", E: 6, F: 1, Lower: "(0, 6); (1, 3)", Upper: "(0, 6); (1/2, 3)"}))

	got, ok, err := s.Get(3, "x^6+3*x^2+3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "(0, 6); (1, 3)", got.Lower)

	all, err := s.List(3)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListNewestFirst(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(Record{P: 2, Poly: "x^2-2", E: 2, F: 1, Lower: "a", Upper: "a", CreatedAt: base}))
	require.NoError(t, s.Put(Record{P: 2, Poly: "x^2-6", E: 2, F: 1, Lower: "b", Upper: "b", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Put(Record{P: 5, Poly: "x^3-5", E: 3, F: 1, Lower: "c", Upper: "c", CreatedAt: base}))

	got, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "x^2-6", got[0].Poly)
	assert.Equal(t, "x^2-2", got[1].Poly)
}
