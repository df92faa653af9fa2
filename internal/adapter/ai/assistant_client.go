package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"class-companion/internal/config"
	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/port"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultPollInterval = time.Second

// AssistantClient talks to the OpenAI Assistants v2 API: it starts a thread
// run, polls until the run is terminal and reads back the newest assistant
// message together with its file annotations.
type AssistantClient struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

var _ port.AssistantProvider = (*AssistantClient)(nil)

func NewAssistantClient(cfg config.ProviderConfig, httpClient *http.Client) *AssistantClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}
	return &AssistantClient{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		httpClient:   httpClient,
		pollInterval: defaultPollInterval,
	}
}

type threadMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type createThreadAndRunRequest struct {
	AssistantID string `json:"assistant_id"`
	Thread      struct {
		Messages []threadMessage `json:"messages"`
	} `json:"thread"`
}

type runResponse struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type annotation struct {
	Type         string `json:"type"`
	Text         string `json:"text"`
	FileCitation *struct {
		FileID string `json:"file_id"`
		Quote  string `json:"quote"`
	} `json:"file_citation"`
	FilePath *struct {
		FileID string `json:"file_id"`
	} `json:"file_path"`
}

type messageList struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text *struct {
				Value       string       `json:"value"`
				Annotations []annotation `json:"annotations"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

type fileObject struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

func (c *AssistantClient) Ask(ctx context.Context, assistantID, prompt string) (*domain.AssistantReply, error) {
	if c.apiKey == "" {
		return nil, domain.NewAIUnconfiguredError("openai-assistant")
	}

	var req createThreadAndRunRequest
	req.AssistantID = assistantID
	req.Thread.Messages = []threadMessage{{Role: domain.RoleUser, Content: prompt}}

	var run runResponse
	if err := c.do(ctx, http.MethodPost, "/threads/runs", req, &run); err != nil {
		return nil, domain.NewAIServiceError(fmt.Errorf("create run: %w", err))
	}

	run, err := c.waitForRun(ctx, run)
	if err != nil {
		return nil, domain.NewAIServiceError(err)
	}
	if run.Status != "completed" {
		msg := run.Status
		if run.LastError != nil {
			msg = fmt.Sprintf("%s: %s", run.Status, run.LastError.Message)
		}
		return nil, domain.NewAIServiceError(fmt.Errorf("assistant run ended with status %s", msg))
	}

	var messages messageList
	path := fmt.Sprintf("/threads/%s/messages?order=desc&limit=1", run.ThreadID)
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, domain.NewAIServiceError(fmt.Errorf("list messages: %w", err))
	}

	reply := &domain.AssistantReply{Sources: []domain.Source{}}
	for _, m := range messages.Data {
		if m.Role != domain.RoleAssistant {
			continue
		}
		var parts []string
		for _, part := range m.Content {
			if part.Type != "text" || part.Text == nil {
				continue
			}
			parts = append(parts, part.Text.Value)
			for _, a := range part.Text.Annotations {
				if src, ok := c.toSource(ctx, a); ok {
					reply.Sources = append(reply.Sources, src)
				}
			}
		}
		reply.Completion = strings.Join(parts, "\n")
		break
	}
	return reply, nil
}

func (c *AssistantClient) waitForRun(ctx context.Context, run runResponse) (runResponse, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for !isTerminalRunStatus(run.Status) {
		select {
		case <-ctx.Done():
			return run, fmt.Errorf("waiting for run %s: %w", run.ID, ctx.Err())
		case <-ticker.C:
		}
		path := fmt.Sprintf("/threads/%s/runs/%s", run.ThreadID, run.ID)
		if err := c.do(ctx, http.MethodGet, path, nil, &run); err != nil {
			return run, fmt.Errorf("poll run: %w", err)
		}
	}
	return run, nil
}

func isTerminalRunStatus(status string) bool {
	switch status {
	case "completed", "failed", "cancelled", "expired", "incomplete", "requires_action":
		return true
	}
	return false
}

// toSource maps one annotation. Filename lookup is best effort.
func (c *AssistantClient) toSource(ctx context.Context, a annotation) (domain.Source, bool) {
	src := domain.Source{Type: domain.SourceType(a.Type), Text: a.Text}
	switch src.Type {
	case domain.SourceFileCitation:
		if a.FileCitation != nil {
			src.FileID = a.FileCitation.FileID
			src.Quote = a.FileCitation.Quote
		}
	case domain.SourceFilePath:
		if a.FilePath != nil {
			src.FileID = a.FilePath.FileID
		}
	default:
		return domain.Source{}, false
	}

	if src.FileID != "" {
		var f fileObject
		if err := c.do(ctx, http.MethodGet, "/files/"+src.FileID, nil, &f); err != nil {
			logger.Get().Warn("Could not resolve assistant source filename",
				zap.String("file_id", src.FileID), zap.Error(err))
		} else {
			src.Filename = f.Filename
		}
	}
	return src, true
}

func (c *AssistantClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
