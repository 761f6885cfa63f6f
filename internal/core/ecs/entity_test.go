package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityPool(t *testing.T) {
	t.Run("sequential allocation starts at zero", func(t *testing.T) {
		p := NewEntityPool()
		require.Equal(t, EntityID(0), p.Create())
		require.Equal(t, EntityID(1), p.Create())
		require.Equal(t, 2, p.Len())
	})

	t.Run("destroy bumps generation", func(t *testing.T) {
		p := NewEntityPool()
		a := p.Create()
		require.True(t, p.Destroy(a))
		require.False(t, p.Alive(a))
		require.False(t, p.Destroy(a), "stale id must be ignored")

		b := p.Create()
		require.Equal(t, a.Index(), b.Index())
		require.Equal(t, uint32(1), b.Generation())
		require.True(t, p.Alive(b))
		require.False(t, p.Alive(a))
	})

	t.Run("forged id for a freed slot is not alive", func(t *testing.T) {
		p := NewEntityPool()
		a := p.Create()
		p.Destroy(a)
		require.False(t, p.Alive(NewEntityID(a.Index(), a.Generation()+1)))
	})

	t.Run("unknown index", func(t *testing.T) {
		p := NewEntityPool()
		require.False(t, p.Alive(EntityID(42)))
	})
}

func TestParseEntityID(t *testing.T) {
	id := NewEntityID(7, 3)
	got, err := ParseEntityID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, got)

	for _, bad := range []string{"", "-1", "1.5", "abc", "18446744073709551616"} {
		_, err := ParseEntityID(bad)
		require.Error(t, err, bad)
	}
}
