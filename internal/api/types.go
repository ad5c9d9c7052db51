package api

import "github.com/kapu/vidchat-go/internal/domain"

type processRequest struct {
	URL string `json:"url"`
}

// ProcessResult is the backend's answer to a process_full_video call.
type ProcessResult struct {
	VideoName  string `json:"video_name"`
	Transcript string `json:"transcript"`
}

// ChatRequest is the payload of a chat call. History excludes the message
// being sent; ReplyStyle falls back to the default persona when empty.
type ChatRequest struct {
	Message    string               `json:"message"`
	Transcript string               `json:"transcript"`
	VideoName  string               `json:"video_name"`
	History    []domain.ChatMessage `json:"history"`
	ReplyStyle string               `json:"reply_style"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}
