package domain

import "time"

// Stage is the lifecycle of a single video-processing attempt.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageProcessing Stage = "processing"
	StageReady      Stage = "ready"
)

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsValid() bool {
	switch s {
	case StageIdle, StageProcessing, StageReady:
		return true
	default:
		return false
	}
}

// VideoSession is the state of the active video-processing attempt.
// VideoName and Transcript are non-empty exactly when Stage is ready;
// Err is set only while idle, after a failed attempt.
type VideoSession struct {
	VideoURL   string `json:"video_url"`
	VideoName  string `json:"video_name"`
	Transcript string `json:"transcript"`
	Stage      Stage  `json:"stage"`
	Err        string `json:"error,omitempty"`
}

func (s VideoSession) IsReady() bool {
	return s.Stage == StageReady
}

// CacheEntry is one persisted URL -> transcript result.
type CacheEntry struct {
	URL        string `json:"url"`
	VideoName  string `json:"video_name"`
	Transcript string `json:"transcript"`
	Date       string `json:"date"`
}

func NewCacheEntry(url, videoName, transcript string) CacheEntry {
	return CacheEntry{
		URL:        url,
		VideoName:  videoName,
		Transcript: transcript,
		Date:       time.Now().UTC().Format(time.RFC3339),
	}
}
