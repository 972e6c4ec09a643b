package store

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// NewKey returns a random URL-safe key.
func NewKey() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}
