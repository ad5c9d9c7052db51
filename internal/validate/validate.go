package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/kapu/vidchat-go/internal/constants"
	"github.com/kapu/vidchat-go/pkg/errors"
)

// YouTube URL forms accepted by the backend: watch, youtu.be, embed, shorts.
// The capture group is always the 11-character video ID.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})(&.*)?$`),
	regexp.MustCompile(`^https?://(www\.)?youtu\.be/([a-zA-Z0-9_-]{11})(\?.*)?$`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})(\?.*)?$`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})(\?.*)?$`),
}

func YouTubeURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return errors.NewValidationError("URL cannot be empty", "video_url", rawURL)
	}
	for _, pattern := range youtubePatterns {
		if pattern.MatchString(trimmed) {
			return nil
		}
	}
	return errors.NewValidationError(
		"please enter a valid YouTube URL (youtube.com/watch, youtu.be, or youtube.com/shorts)",
		"video_url", rawURL,
	)
}

// VideoID extracts the 11-character video ID from any accepted YouTube URL form.
func VideoID(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[2], nil
		}
	}
	return "", errors.NewValidationError("could not extract a video ID", "video_url", rawURL)
}

func BackendURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return errors.NewValidationError("backend URL cannot be empty", "backend_url", rawURL)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return errors.NewValidationError("invalid URL format", "backend_url", rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.NewValidationError("URL must start with http:// or https://", "backend_url", rawURL)
	}

	host := parsed.Hostname()
	if strings.Contains(host, "ngrok") &&
		!strings.HasSuffix(host, ".ngrok-free.app") &&
		!strings.HasSuffix(host, ".ngrok.io") {
		return errors.NewValidationError(
			"ngrok URL should end with .ngrok-free.app or .ngrok.io",
			"backend_url", rawURL,
		)
	}

	return nil
}

func SessionCookie(cookie string) error {
	trimmed := strings.TrimSpace(cookie)
	if trimmed == "" {
		return errors.NewValidationError("session cookie cannot be empty", "session_cookie", cookie)
	}
	if len(trimmed) < constants.ValidationLimits.MinCookieLength {
		return errors.NewValidationError("session cookie appears to be too short", "session_cookie", cookie)
	}
	return nil
}

func ChatMessage(message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return errors.NewValidationError("message cannot be empty", "message", message)
	}
	if len([]rune(trimmed)) > constants.ChatConfig.MaxMessageLength {
		return errors.NewValidationError(
			fmt.Sprintf("message is too long (max %d characters)", constants.ChatConfig.MaxMessageLength),
			"message", message,
		)
	}
	return nil
}

func Transcript(transcript string) error {
	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return errors.NewValidationError("transcript is empty", "transcript", transcript)
	}
	if len([]rune(trimmed)) < constants.ValidationLimits.MinTranscriptLength {
		return errors.NewValidationError("transcript is too short", "transcript", transcript)
	}
	return nil
}
