package repository

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
)

const defaultPageSize = 50

type Page struct {
	Orders     []*model.Order `json:"orders"`
	NextCursor string         `json:"nextCursor,omitempty"`
	HasMore    bool           `json:"hasMore"`
}

// Cursor marks a position in the newest-first order listing.
type Cursor struct {
	PlacedAt time.Time `json:"placed_at"`
	ID       string    `json:"id"`
}

func EncodeCursor(c Cursor) string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeCursor parses an opaque page cursor. An empty cursor decodes to a
// position after the newest possible order, so the first page starts at
// the top.
func DecodeCursor(encoded string) (Cursor, error) {
	if encoded == "" {
		return Cursor{
			PlacedAt: time.Now().UTC().Add(24 * time.Hour),
			ID:       "￿",
		}, nil
	}

	var c Cursor
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return c, err
	}

	err = json.Unmarshal(data, &c)
	return c, err
}
