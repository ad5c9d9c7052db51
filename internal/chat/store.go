package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/kapu/vidchat-go/internal/api"
	"github.com/kapu/vidchat-go/internal/constants"
	"github.com/kapu/vidchat-go/internal/domain"
	"github.com/kapu/vidchat-go/internal/storage"
	"github.com/kapu/vidchat-go/internal/util"
	"go.uber.org/zap"
)

// ChatSender is the slice of the API client the store needs.
type ChatSender interface {
	SendChat(ctx context.Context, req api.ChatRequest) (string, error)
}

// Store owns the message log and active reply persona for the current video.
// Every log or persona mutation is written through to storage; switching the
// active video loads that video's persisted log and persona. Chat failures
// never propagate: the user sees a synthetic assistant message and the store
// stays ready to send.
type Store struct {
	store  storage.Store
	sender ChatSender
	logger *zap.Logger

	videoName   string
	transcript  string
	messages    []domain.ChatMessage
	replyStyle  string
	savedStyles []string
	pending     bool
}

func NewStore(ctx context.Context, store storage.Store, sender ChatSender, logger *zap.Logger) *Store {
	s := &Store{
		store:      store,
		sender:     sender,
		logger:     logger,
		replyStyle: constants.ChatConfig.DefaultReplyStyle,
	}
	s.loadStyleLibrary(ctx)
	return s
}

// SetVideo switches the active video, loading its persisted log and persona
// or defaults if none exist.
func (s *Store) SetVideo(ctx context.Context, videoName, transcript string) {
	s.videoName = videoName
	s.transcript = transcript
	s.messages = nil
	s.replyStyle = constants.ChatConfig.DefaultReplyStyle

	if videoName == "" {
		return
	}

	var saved []domain.ChatMessage
	if found, err := s.store.Get(ctx, s.historyKey(), &saved); err == nil && found {
		s.messages = saved
	}

	var style string
	if found, err := s.store.Get(ctx, s.styleKey(), &style); err == nil && found && style != "" {
		s.replyStyle = style
	}
}

// Initialize seeds the log with a readiness announcement, only when the log
// for this video is empty. Logs loaded from storage are never overwritten.
func (s *Store) Initialize(ctx context.Context, name string) {
	if len(s.messages) > 0 {
		return
	}

	displayName := name
	if displayName == "" {
		displayName = s.videoName
	}
	if displayName == "" {
		displayName = "Video"
	}

	s.append(ctx, domain.NewChatMessage(domain.RoleSystem,
		fmt.Sprintf("%q has been processed. You can now chat about it!", displayName)))
}

// Send submits one user message. Blank input and sends while another send is
// pending are no-ops. The history sent to the backend is the log as it stood
// before the new user message was appended.
func (s *Store) Send(ctx context.Context, text string) {
	if util.IsBlank(text) || s.pending {
		return
	}

	userMessage := strings.TrimSpace(text)
	history := make([]domain.ChatMessage, len(s.messages))
	copy(history, s.messages)

	s.append(ctx, domain.NewChatMessage(domain.RoleUser, userMessage))
	s.pending = true
	defer func() { s.pending = false }()

	chatCtx, cancel := context.WithTimeout(ctx, constants.APIConfig.ChatTimeout)
	defer cancel()

	reply, err := s.sender.SendChat(chatCtx, api.ChatRequest{
		Message:    userMessage,
		Transcript: s.transcript,
		VideoName:  s.videoName,
		History:    history,
		ReplyStyle: s.replyStyle,
	})
	if err != nil {
		s.logger.Warn("Chat send failed", zap.String("video_name", s.videoName), zap.Error(err))
		s.append(ctx, domain.NewChatMessage(domain.RoleAssistant, constants.ChatConfig.ErrorReply))
		return
	}

	s.append(ctx, domain.NewChatMessage(domain.RoleAssistant, reply))
}

// Clear replaces the log with a single fresh system message and deletes the
// persisted log for the current video. The persisted persona is untouched.
func (s *Store) Clear(ctx context.Context) {
	s.messages = []domain.ChatMessage{domain.NewChatMessage(domain.RoleSystem,
		fmt.Sprintf("Memory cleared. I'm ready for new questions about %q.", s.videoName))}

	if s.videoName != "" {
		if err := s.store.Delete(ctx, s.historyKey()); err != nil {
			s.logger.Warn("Failed to delete chat history", zap.String("video_name", s.videoName), zap.Error(err))
		}
	}
}

// SetPersona updates the active reply style immediately, with no validation,
// and persists it for the current video.
func (s *Store) SetPersona(ctx context.Context, style string) {
	s.replyStyle = style
	s.persistStyle(ctx)
}

// SavePersonaToLibrary adds the trimmed active style to the global library.
// Rejected (returns false) for styles shorter than two characters, the
// default style, and styles already present.
func (s *Store) SavePersonaToLibrary(ctx context.Context) bool {
	trimmed := strings.TrimSpace(s.replyStyle)
	if len([]rune(trimmed)) < constants.ChatConfig.MinSavedStyleRunes {
		return false
	}
	if trimmed == constants.ChatConfig.DefaultReplyStyle {
		return false
	}
	if util.Contains(s.savedStyles, trimmed) {
		return false
	}

	s.savedStyles = append(s.savedStyles, trimmed)
	s.persistStyleLibrary(ctx)
	return true
}

// RemovePersonaFromLibrary removes a saved style by exact match.
func (s *Store) RemovePersonaFromLibrary(ctx context.Context, style string) {
	kept := make([]string, 0, len(s.savedStyles))
	for _, saved := range s.savedStyles {
		if saved != style {
			kept = append(kept, saved)
		}
	}
	s.savedStyles = kept
	s.persistStyleLibrary(ctx)
}

func (s *Store) Messages() []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) ReplyStyle() string {
	return s.replyStyle
}

func (s *Store) SavedStyles() []string {
	out := make([]string, len(s.savedStyles))
	copy(out, s.savedStyles)
	return out
}

func (s *Store) VideoName() string {
	return s.videoName
}

func (s *Store) Pending() bool {
	return s.pending
}

func (s *Store) append(ctx context.Context, msg domain.ChatMessage) {
	s.messages = append(s.messages, msg)
	s.persistLog(ctx)
}

func (s *Store) persistLog(ctx context.Context) {
	if s.videoName == "" || len(s.messages) == 0 {
		return
	}
	if err := s.store.Set(ctx, s.historyKey(), s.messages); err != nil {
		s.logger.Warn("Failed to persist chat history", zap.String("video_name", s.videoName), zap.Error(err))
	}
}

func (s *Store) persistStyle(ctx context.Context) {
	if s.videoName == "" {
		return
	}
	if err := s.store.Set(ctx, s.styleKey(), s.replyStyle); err != nil {
		s.logger.Warn("Failed to persist reply style", zap.String("video_name", s.videoName), zap.Error(err))
	}
}

func (s *Store) persistStyleLibrary(ctx context.Context) {
	if err := s.store.Set(ctx, constants.ChatConfig.StyleLibraryKey, s.savedStyles); err != nil {
		s.logger.Warn("Failed to persist style library", zap.Error(err))
	}
}

func (s *Store) loadStyleLibrary(ctx context.Context) {
	var styles []string
	if found, err := s.store.Get(ctx, constants.ChatConfig.StyleLibraryKey, &styles); err == nil && found {
		s.savedStyles = styles
	}
}

func (s *Store) historyKey() string {
	return constants.ChatConfig.HistoryKeyPrefix + s.videoName
}

func (s *Store) styleKey() string {
	return constants.ChatConfig.StyleKeyPrefix + s.videoName
}
