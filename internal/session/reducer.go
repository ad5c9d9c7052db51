package session

import "github.com/kapu/vidchat-go/internal/domain"

type commandKind int

const (
	cmdSetError commandKind = iota
	cmdBeginProcessing
	cmdSetVideoData
	cmdProcessingFailed
	cmdReset
)

type command struct {
	kind       commandKind
	err        string
	videoURL   string
	videoName  string
	transcript string
}

// reduce is the only mutator of the video session state: a pure transition
// from (state, command) to the next state.
func reduce(state domain.VideoSession, cmd command) domain.VideoSession {
	switch cmd.kind {
	case cmdSetError:
		state.Err = cmd.err
		return state

	case cmdBeginProcessing:
		state.VideoURL = cmd.videoURL
		state.Stage = domain.StageProcessing
		state.Err = ""
		return state

	case cmdSetVideoData:
		if cmd.videoURL != "" {
			state.VideoURL = cmd.videoURL
		}
		state.VideoName = cmd.videoName
		state.Transcript = cmd.transcript
		state.Stage = domain.StageReady
		state.Err = ""
		return state

	case cmdProcessingFailed:
		state.VideoName = ""
		state.Transcript = ""
		state.Stage = domain.StageIdle
		state.Err = cmd.err
		return state

	case cmdReset:
		return domain.VideoSession{Stage: domain.StageIdle}

	default:
		return state
	}
}
