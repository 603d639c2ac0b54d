package redis_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/chordsheet/internal/redis"
)

func TestSheetKey(t *testing.T) {
	t.Parallel()

	a := redis.SheetKey("{title: A}", true)
	assert.True(t, strings.HasPrefix(a, "chordsheet:raw:"))
	assert.Len(t, strings.TrimPrefix(a, "chordsheet:raw:"), 64)

	assert.Equal(t, a, redis.SheetKey("{title: A}", true))
	assert.NotEqual(t, a, redis.SheetKey("{title: B}", true))
	assert.NotEqual(t, a, redis.SheetKey("{title: A}", false))
}

func TestSheetEncoding(t *testing.T) {
	t.Parallel()

	in := redis.CachedSheet{
		HTML:       `<div class="chord-sheet-content"></div>`,
		Title:      "Amazing Grace",
		RenderedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := redis.EncodeSheet(in)
	require.NoError(t, err)

	out, err := redis.DecodeSheet(data)
	require.NoError(t, err)
	assert.Equal(t, in.HTML, out.HTML)
	assert.Equal(t, in.Title, out.Title)
	assert.Empty(t, out.Artist)
	assert.True(t, in.RenderedAt.Equal(out.RenderedAt))

	_, err = redis.DecodeSheet([]byte{0xc1})
	require.Error(t, err)
}

func TestNewDBManager(t *testing.T) {
	t.Parallel()

	m, err := redis.NewDBManager("localhost:6379", "secret", time.Hour)
	require.NoError(t, err)
	require.NoError(t, m.Close())
}
