package domain

import (
	"path"
	"strings"
)

// AvatarFile is an image picked by the user for upload. It is held in memory for the
// length of an edit session so a failed save can be retried with the same bytes.
type AvatarFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StorageName returns the last element of the file name, safe to use as a single path
// segment. Names with nothing usable left become "avatar".
func (f *AvatarFile) StorageName() string {
	name := path.Base(strings.ReplaceAll(f.Filename, `\`, "/"))
	switch name {
	case "", ".", "..", "/":
		return "avatar"
	}
	return name
}

// Size returns the length of the file content in bytes.
func (f *AvatarFile) Size() int64 {
	return int64(len(f.Content))
}
