// Package storage holds the evidence blob store the report flow writes proof
// images to before any ledger mutation commits.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrObjectExists is returned when a store would overwrite an existing object.
// Overwrites are never permitted; callers pick a new name instead.
var ErrObjectExists = errors.New("object already exists")

// BlobStore persists evidence bytes under a unique name and returns a public
// reference for it.
type BlobStore interface {
	Store(ctx context.Context, data []byte, contentType, name string) (string, error)
}

// ObjectName builds a collision-resistant object name from the uploaded
// file's original name: unix-millis, a random suffix and the sanitized
// original, joined with dashes.
func ObjectName(original string) string {
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Int63n(1e9), sanitize(original))
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "evidence"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
