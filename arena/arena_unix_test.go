//go:build unix

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMmapArenaExtend(t *testing.T) {
	a, err := NewMmap(64 << 10)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, 0, a.Lo())
	require.Equal(t, 0, a.Hi())

	off, err := a.Extend(64)
	require.NoError(t, err)
	require.Equal(t, 0, off)
	require.Equal(t, 64, a.Hi())
	require.Len(t, a.Bytes(), 64)

	off, err = a.Extend(32)
	require.NoError(t, err)
	require.Equal(t, 64, off)
	require.Equal(t, 96, a.Hi())
	require.Len(t, a.Bytes(), 96)
}

func TestMmapArenaExtendPastCapacity(t *testing.T) {
	a, err := NewMmap(pageSize)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Extend(pageSize + 1)
	require.ErrorIs(t, err, ErrLimitExceeded)
}

func TestMmapArenaRejectsNegative(t *testing.T) {
	a, err := NewMmap(pageSize)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Extend(-1)
	require.Error(t, err)
}

func TestMmapArenaBytesStableAcrossGrowth(t *testing.T) {
	a, err := NewMmap(4 << 20)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Extend(16)
	require.NoError(t, err)
	a.Bytes()[0] = 0xAB

	_, err = a.Extend(16)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), a.Bytes()[0])
}

func TestMmapArenaRoundsCapacityToPageSize(t *testing.T) {
	a, err := NewMmap(1)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, pageSize, a.capacity)
}

func TestMmapArenaCloseThenDouble(t *testing.T) {
	a, err := NewMmap(pageSize)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
