package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// inviteTokenBytes gives 256 bits of entropy; invite tokens are capability
// tokens embedded in shareable links and must not be enumerable.
const inviteTokenBytes = 32

// GenerateInviteToken returns a URL-safe, unguessable opaque token.
func GenerateInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
