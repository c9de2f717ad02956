package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senura-medagoda/UniMate-sub005/internal/repository"
)

func TestCursorRoundTrip(t *testing.T) {
	c := repository.Cursor{
		PlacedAt: time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC),
		ID:       "ord-42",
	}

	got, err := repository.DecodeCursor(repository.EncodeCursor(c))
	require.NoError(t, err)
	assert.True(t, got.PlacedAt.Equal(c.PlacedAt))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeCursorEmpty(t *testing.T) {
	// An empty cursor points past the newest possible order so the first
	// page starts at the top of the listing.
	got, err := repository.DecodeCursor("")
	require.NoError(t, err)
	assert.True(t, got.PlacedAt.After(time.Now()))
}

func TestDecodeCursorGarbage(t *testing.T) {
	_, err := repository.DecodeCursor("not base64!!")
	assert.Error(t, err)
}
