// Package media relays uploaded project images to an external object store
// and hands back their public URLs.
package media

import (
	"context"
	"crypto/md5"
	"encoding/hex"
)

// Object is one file to be stored under Folder/Name.
type Object struct {
	Folder      string
	Name        string
	Body        []byte
	ContentType string
}

// Store persists objects and returns the URL they are served from. Putting
// the same Folder/Name twice overwrites and yields the same URL.
type Store interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// PublicID derives the stored name of a file from its content, so a re-upload
// of identical bytes lands on the same object.
func PublicID(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}
