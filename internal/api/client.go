package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kapu/vidchat-go/internal/constants"
	"github.com/kapu/vidchat-go/internal/domain"
	"github.com/kapu/vidchat-go/pkg/errors"
	"go.uber.org/zap"
)

const (
	pathProcessVideo = "/process_full_video"
	pathChat         = "/chat"
	pathHealth       = "/health"
)

// Client wraps the transcription backend's three endpoints. Deadlines are the
// caller's responsibility via ctx; video processing legitimately takes minutes.
type Client struct {
	baseURL    string
	cookie     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, cookie string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookie:     cookie,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProcessVideo asks the backend to download and transcribe a YouTube video.
func (c *Client) ProcessVideo(ctx context.Context, videoURL string) (*ProcessResult, error) {
	req := processRequest{URL: videoURL}
	var result ProcessResult

	if err := c.doRequest(ctx, http.MethodPost, pathProcessVideo, req, &result); err != nil {
		c.logger.Error("Video processing request failed",
			zap.String("video_url", videoURL),
			zap.Error(err),
		)
		return nil, err
	}

	return &result, nil
}

// SendChat sends one user message with its conversation context and returns
// the assistant's reply text.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (string, error) {
	if req.ReplyStyle == "" {
		req.ReplyStyle = constants.ChatConfig.DefaultReplyStyle
	}
	if req.History == nil {
		req.History = []domain.ChatMessage{}
	}

	var resp chatResponse
	if err := c.doRequest(ctx, http.MethodPost, pathChat, req, &resp); err != nil {
		c.logger.Error("Chat request failed",
			zap.String("video_name", req.VideoName),
			zap.Error(err),
		)
		return "", err
	}

	return resp.Response, nil
}

// HealthCheck reports backend reachability. Transport errors and non-2xx
// statuses both read as unreachable.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, constants.APIConfig.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathHealth, nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Health check failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) doRequest(ctx context.Context, method, path string, reqBody, respBody any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return errors.NewAPIError("failed to marshal request", 400, map[string]any{
				"url": url,
			}).WithCause(err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("request failed", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.normalizeError(resp, url)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return errors.NewAPIError("failed to decode response", 500, map[string]any{
				"url": url,
			}).WithCause(err)
		}
	}

	return nil
}

// normalizeError turns a non-2xx response into an APIError. Backend error
// bodies ({"error": "..."}) pass through verbatim; everything else falls back
// to a generic status message.
func (c *Client) normalizeError(resp *http.Response, url string) error {
	message := fmt.Sprintf("HTTP %s", resp.Status)

	body, readErr := io.ReadAll(resp.Body)
	if readErr == nil {
		var errBody errorResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
	}

	return errors.NewAPIError(message, resp.StatusCode, map[string]any{
		"url": url,
	})
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
}
