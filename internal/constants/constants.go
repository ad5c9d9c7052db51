package constants

import "time"

var CacheConfig = struct {
	MaxEntries int
	ListKey    string
}{
	MaxEntries: 5,
	ListKey:    "transcripts:recent",
}

var ChatConfig = struct {
	DefaultReplyStyle  string
	MaxMessageLength   int
	MinSavedStyleRunes int
	ErrorReply         string
	HistoryKeyPrefix   string
	StyleKeyPrefix     string
	StyleLibraryKey    string
}{
	DefaultReplyStyle:  "Helpful and concise",
	MaxMessageLength:   2000,
	MinSavedStyleRunes: 2,
	ErrorReply:         "Chat Error: could not reach the AI. Please check your backend.",
	HistoryKeyPrefix:   "chat:history:",
	StyleKeyPrefix:     "chat:style:",
	StyleLibraryKey:    "chat:styles",
}

var APIConfig = struct {
	ProcessTimeout time.Duration
	ChatTimeout    time.Duration
	HealthTimeout  time.Duration
}{
	ProcessTimeout: 5 * time.Minute, // full download + transcription on the backend
	ChatTimeout:    60 * time.Second,
	HealthTimeout:  10 * time.Second,
}

var HealthConfig = struct {
	CheckInterval time.Duration
}{
	CheckInterval: 60 * time.Second,
}

var StorageConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var ValidationLimits = struct {
	MinCookieLength     int
	MinTranscriptLength int
	VideoIDLength       int
}{
	MinCookieLength:     10,
	MinTranscriptLength: 10,
	VideoIDLength:       11,
}
