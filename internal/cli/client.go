package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/validate"
	"github.com/SodiqOgundairo/condolence-backend/internal/transport/http/dto"
	httperrors "github.com/SodiqOgundairo/condolence-backend/internal/transport/http/errors"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrNameRequired       = errors.New("name is required")
	ErrMessageRequired    = errors.New("message is required")
	ErrRecordingRequired  = errors.New("recording is required")
)

// Client talks to the tribute API. At most one submission is in flight at a
// time; a second attempt while one is running is refused rather than queued,
// so a double invocation cannot duplicate a tribute.
type Client struct {
	baseURL string
	http    *http.Client

	mu   sync.Mutex
	busy bool
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) SendMessage(ctx context.Context, name, message string, isPublic bool) (dto.MessageResponse, error) {
	if !validate.Required(name) {
		return dto.MessageResponse{}, ErrNameRequired
	}
	if !validate.Required(message) {
		return dto.MessageResponse{}, ErrMessageRequired
	}

	if err := c.beginSubmission(); err != nil {
		return dto.MessageResponse{}, err
	}
	defer c.endSubmission()

	body, err := json.Marshal(dto.CreateMessageRequest{
		Name:     name,
		Message:  message,
		IsPublic: &isPublic,
	})
	if err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return dto.MessageResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res dto.MessageResponse
	if err := c.do(req, http.StatusCreated, &res); err != nil {
		return dto.MessageResponse{}, err
	}
	return res, nil
}

func (c *Client) SendVoice(ctx context.Context, name, fileName string, clip []byte, isPublic bool) (dto.MessageResponse, error) {
	if !validate.Required(name) {
		return dto.MessageResponse{}, ErrNameRequired
	}
	if len(clip) == 0 {
		return dto.MessageResponse{}, ErrRecordingRequired
	}

	if err := c.beginSubmission(); err != nil {
		return dto.MessageResponse{}, err
	}
	defer c.endSubmission()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", name); err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode form: %w", err)
	}
	if err := mw.WriteField("is_public", strconv.FormatBool(isPublic)); err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode form: %w", err)
	}
	fw, err := mw.CreateFormFile("voicenote", fileName)
	if err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode form: %w", err)
	}
	if _, err := fw.Write(clip); err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return dto.MessageResponse{}, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages/voice", &buf)
	if err != nil {
		return dto.MessageResponse{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res dto.MessageResponse
	if err := c.do(req, http.StatusCreated, &res); err != nil {
		return dto.MessageResponse{}, err
	}
	return res, nil
}

func (c *Client) ListMessages(ctx context.Context, page int) (dto.MessagesPageResponse, error) {
	url := fmt.Sprintf("%s/v1/messages?page=%d", c.baseURL, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dto.MessagesPageResponse{}, err
	}

	var res dto.MessagesPageResponse
	if err := c.do(req, http.StatusOK, &res); err != nil {
		return dto.MessagesPageResponse{}, err
	}
	return res, nil
}

func (c *Client) beginSubmission() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrSubmissionInFlight
	}
	c.busy = true
	return nil
}

func (c *Client) endSubmission() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Client) do(req *http.Request, wantStatus int, target any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr httperrors.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%s: %s", resp.Status, apiErr.Message)
	}
	return fmt.Errorf("unexpected response %s", resp.Status)
}
