package announcements

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMarksPerUser(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	marks := NewReadMarks(rdb)
	ctx := context.Background()

	require.NoError(t, marks.MarkRead(ctx, 1, 10))
	require.NoError(t, marks.MarkRead(ctx, 1, 11))
	require.NoError(t, marks.MarkRead(ctx, 2, 10))

	read, err := marks.ReadIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{10: true, 11: true}, read)

	read, err = marks.ReadIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{10: true}, read)
}

func TestReadMarksIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	marks := NewReadMarks(rdb)
	ctx := context.Background()

	require.NoError(t, marks.MarkRead(ctx, 1, 10))
	require.NoError(t, marks.MarkRead(ctx, 1, 10))

	read, err := marks.ReadIDs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, read, 1)
}
