package internal

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// Short id players read out to each other, hence only 6 chars.
func NewMatchUuid() string {
	return uuid.NewString()[:6]
}

// URL compatible session id, sent back as the sessionID query
// parameter on reconnection.
func NewSessionId() string {
	return base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
}
