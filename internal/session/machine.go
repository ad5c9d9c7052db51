package session

import (
	"context"

	"github.com/kapu/vidchat-go/internal/api"
	"github.com/kapu/vidchat-go/internal/constants"
	"github.com/kapu/vidchat-go/internal/domain"
	"github.com/kapu/vidchat-go/internal/util"
	"github.com/kapu/vidchat-go/internal/validate"
	"github.com/kapu/vidchat-go/pkg/errors"
	"go.uber.org/zap"
)

// VideoProcessor is the slice of the API client the machine needs.
type VideoProcessor interface {
	ProcessVideo(ctx context.Context, videoURL string) (*api.ProcessResult, error)
}

// Machine drives the idle -> processing -> ready lifecycle of one video
// submission, consulting the transcript cache before touching the network.
//
// Single-caller contract: only one Submit may be in flight, enforced by the
// caller (the REPL serializes input). There is no internal mutex; a violating
// caller gets last-writer-wins state. A submission that is superseded by
// Reset or a newer Submit while its request is in flight has its result
// discarded via the token check.
type Machine struct {
	state     domain.VideoSession
	cache     *TranscriptCache
	processor VideoProcessor
	logger    *zap.Logger
	token     uint64
}

func NewMachine(cache *TranscriptCache, processor VideoProcessor, logger *zap.Logger) *Machine {
	return &Machine{
		state:     domain.VideoSession{Stage: domain.StageIdle},
		cache:     cache,
		processor: processor,
		logger:    logger,
	}
}

// State returns a snapshot of the current session.
func (m *Machine) State() domain.VideoSession {
	return m.state
}

// Submit processes a video URL. A blank URL fails fast without changing the
// stage. A cached URL reaches ready synchronously with no network call. A
// cache miss transitions to processing, calls the backend, and on success
// stores the result and inserts it into the cache; on failure the machine
// returns to idle with the error message surfaced on the state, and the
// error is returned to the caller.
func (m *Machine) Submit(ctx context.Context, videoURL string) error {
	if util.IsBlank(videoURL) {
		m.state = reduce(m.state, command{kind: cmdSetError, err: "please enter a video URL"})
		return errors.NewValidationError("please enter a video URL", "video_url", videoURL)
	}

	if cached, ok := m.cache.Get(ctx, videoURL); ok {
		m.logger.Info("Transcript cache hit",
			zap.String("video_url", videoURL),
			zap.String("video_name", cached.VideoName),
		)
		m.state = reduce(m.state, command{
			kind:       cmdSetVideoData,
			videoURL:   videoURL,
			videoName:  cached.VideoName,
			transcript: cached.Transcript,
		})
		return nil
	}

	m.token++
	token := m.token
	m.state = reduce(m.state, command{kind: cmdBeginProcessing, videoURL: videoURL})

	processCtx, cancel := context.WithTimeout(ctx, constants.APIConfig.ProcessTimeout)
	defer cancel()

	result, err := m.processor.ProcessVideo(processCtx, videoURL)

	if token != m.token {
		// A reset or newer submission won the race; this result is stale.
		m.logger.Warn("Discarding superseded processing result", zap.String("video_url", videoURL))
		return nil
	}

	if err != nil {
		m.state = reduce(m.state, command{kind: cmdProcessingFailed, err: err.Error()})
		return err
	}

	// A backend success with an unusable transcript is still a failure.
	if err := validate.Transcript(result.Transcript); err != nil {
		m.state = reduce(m.state, command{kind: cmdProcessingFailed, err: err.Error()})
		return err
	}

	m.state = reduce(m.state, command{
		kind:       cmdSetVideoData,
		videoURL:   videoURL,
		videoName:  result.VideoName,
		transcript: result.Transcript,
	})

	if err := m.cache.Put(ctx, videoURL, result.VideoName, result.Transcript); err != nil {
		m.logger.Warn("Failed to cache transcript", zap.String("video_url", videoURL), zap.Error(err))
	}

	videoID, _ := validate.VideoID(videoURL)
	m.logger.Info("Video processed",
		zap.String("video_url", videoURL),
		zap.String("video_id", videoID),
		zap.String("video_name", result.VideoName),
	)
	return nil
}

// Reset clears the session back to idle. Idempotent. Any in-flight
// submission result is discarded when it lands.
func (m *Machine) Reset() {
	m.token++
	m.state = reduce(m.state, command{kind: cmdReset})
}
