// Package identity derives privacy-preserving identifiers from raw contact
// strings. The one-way hash is what the rest of the system stores and looks
// up; the optional sealer keeps a reversible copy for moderation reveal.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash maps a raw contact string to its stable identity: the SHA-256 hex
// digest of the whitespace-trimmed input. No case folding and no phone number
// canonicalization — "+1 555" and "+1555" are distinct identities.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
