package validate

import (
	"strings"
	"testing"
)

func TestYouTubeURLAcceptedForms(t *testing.T) {
	valid := []string{
		"https://youtube.com/watch?v=abc12345678",
		"https://www.youtube.com/watch?v=abc12345678",
		"http://youtube.com/watch?v=abc12345678&t=10s",
		"https://youtu.be/abc12345678",
		"https://youtu.be/abc12345678?t=30",
		"https://www.youtube.com/embed/abc12345678",
		"https://youtube.com/shorts/abc12345678",
		"  https://youtube.com/watch?v=abc12345678  ",
	}
	for _, url := range valid {
		if err := YouTubeURL(url); err != nil {
			t.Errorf("expected %q to be valid, got %v", url, err)
		}
	}
}

func TestYouTubeURLRejectedForms(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"not a url",
		"https://vimeo.com/123456",
		"https://youtube.com/watch?v=short",
		"https://youtube.com/playlist?list=PL123",
		"ftp://youtube.com/watch?v=abc12345678",
	}
	for _, url := range invalid {
		if err := YouTubeURL(url); err == nil {
			t.Errorf("expected %q to be rejected", url)
		}
	}
}

func TestVideoIDExtraction(t *testing.T) {
	cases := map[string]string{
		"https://youtube.com/watch?v=dQw4w9WgXcQ":   "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":              "dQw4w9WgXcQ",
		"https://youtube.com/shorts/dQw4w9WgXcQ":    "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ": "dQw4w9WgXcQ",
	}
	for url, want := range cases {
		got, err := VideoID(url)
		if err != nil {
			t.Fatalf("VideoID(%q) returned error: %v", url, err)
		}
		if got != want {
			t.Errorf("VideoID(%q) = %q, want %q", url, got, want)
		}
	}

	if _, err := VideoID("https://example.com"); err == nil {
		t.Error("expected error for non-YouTube URL")
	}
}

func TestBackendURL(t *testing.T) {
	if err := BackendURL("https://api.example.com"); err != nil {
		t.Errorf("expected https URL to be valid, got %v", err)
	}
	if err := BackendURL("http://localhost:5000"); err != nil {
		t.Errorf("expected localhost URL to be valid, got %v", err)
	}
	if err := BackendURL("https://abc123.ngrok-free.app"); err != nil {
		t.Errorf("expected ngrok-free.app URL to be valid, got %v", err)
	}
	if err := BackendURL("https://abc123.ngrok.example.com"); err == nil {
		t.Error("expected malformed ngrok hostname to be rejected")
	}
	if err := BackendURL("ws://example.com"); err == nil {
		t.Error("expected non-http scheme to be rejected")
	}
	if err := BackendURL(""); err == nil {
		t.Error("expected empty URL to be rejected")
	}
}

func TestSessionCookie(t *testing.T) {
	if err := SessionCookie("abcdefghij"); err != nil {
		t.Errorf("expected 10-char cookie to be valid, got %v", err)
	}
	if err := SessionCookie("short"); err == nil {
		t.Error("expected short cookie to be rejected")
	}
	if err := SessionCookie("   "); err == nil {
		t.Error("expected blank cookie to be rejected")
	}
}

func TestChatMessage(t *testing.T) {
	if err := ChatMessage("hello"); err != nil {
		t.Errorf("expected message to be valid, got %v", err)
	}
	if err := ChatMessage("  \t "); err == nil {
		t.Error("expected whitespace-only message to be rejected")
	}
	if err := ChatMessage(strings.Repeat("a", 2001)); err == nil {
		t.Error("expected over-long message to be rejected")
	}
	if err := ChatMessage(strings.Repeat("a", 2000)); err != nil {
		t.Errorf("expected max-length message to be valid, got %v", err)
	}
}

func TestTranscript(t *testing.T) {
	if err := Transcript("this transcript is long enough"); err != nil {
		t.Errorf("expected transcript to be valid, got %v", err)
	}
	if err := Transcript("short"); err == nil {
		t.Error("expected short transcript to be rejected")
	}
	if err := Transcript(""); err == nil {
		t.Error("expected empty transcript to be rejected")
	}
}
