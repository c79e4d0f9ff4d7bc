package models

import "time"

// ContentKind is the media category of a stored file.
type ContentKind string

const (
	KindPhoto    ContentKind = "photo"
	KindVideo    ContentKind = "video"
	KindDocument ContentKind = "document"
	KindAudio    ContentKind = "audio"
	KindVoice    ContentKind = "voice"
)

// Valid reports whether k is one of the supported media categories.
func (k ContentKind) Valid() bool {
	switch k {
	case KindPhoto, KindVideo, KindDocument, KindAudio, KindVoice:
		return true
	}
	return false
}

// FileRecord represents one stored piece of media retrievable by deep link
type FileRecord struct {
	ID        int64
	UniqueID  string
	FileID    string
	FileType  ContentKind
	CreatedAt time.Time
}
