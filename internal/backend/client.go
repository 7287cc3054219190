// Package backend talks to the remote user API that owns the profile.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/myprofile/internal/domain"
)

const (
	DefaultTimeout = 30 * time.Second

	updateProfilePath = "/api/user/update-profile"
	getProfilePath    = "/api/user/get-profile"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Submission is the content of one update-profile request.
type Submission struct {
	Name     string
	Phone    string
	Address  domain.Address
	Gender   string
	DOB      string
	AboutPet string
	// Image is sent as the "image" part only when non-nil.
	Image *domain.AvatarFile
}

// Result is the backend's reply to an update.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type profileResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	UserData *domain.UserData `json:"userData,omitempty"`
}

// HTTPError represents a non-2xx response. Message holds the server's own
// "message" field when the body carried one.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Body == "" {
		return fmt.Sprintf("backend: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status=%d body=%s", e.StatusCode, e.Body)
}

// ServerMessage extracts the server-supplied message from err, if any.
func ServerMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}

// Client wraps *http.Client with the backend's base URL.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New creates a Client for baseURL. A non-positive timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("backend: invalid base url: %w", err)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// UpdateProfile posts sub as a multipart form to the update-profile endpoint.
// A decoded reply is returned even when it reports success=false; err is set only
// when the request could not be completed or the reply could not be understood.
func (c *Client) UpdateProfile(ctx context.Context, token string, sub Submission) (*Result, error) {
	body, contentType, err := encodeSubmission(sub)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+updateProfilePath, body)
	if err != nil {
		return nil, fmt.Errorf("backend: new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("token", token)

	var out Result
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the authoritative profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*domain.UserData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+getProfilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("token", token)

	var out profileResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "profile could not be loaded"
		}
		return nil, errors.New(msg)
	}
	if out.UserData == nil {
		return &domain.UserData{}, nil
	}
	return out.UserData, nil
}

func (c *Client) do(req *http.Request, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("backend: nil client")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			httpErr.Message = payload.Message
		}
		return httpErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: unmarshal json: %w", err)
	}
	return nil
}

func encodeSubmission(sub Submission) (io.Reader, string, error) {
	address, err := json.Marshal(sub.Address)
	if err != nil {
		return nil, "", fmt.Errorf("backend: marshal address: %w", err)
	}

	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"name", sub.Name},
		{"phone", sub.Phone},
		{"address", string(address)},
		{"gender", sub.Gender},
		{"dob", sub.DOB},
		{"aboutPet", sub.AboutPet},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("backend: write field %s: %w", f.name, err)
		}
	}

	if sub.Image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, sub.Image.Filename))
		contentType := sub.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("backend: create image part: %w", err)
		}
		if _, err := part.Write(sub.Image.Content); err != nil {
			return nil, "", fmt.Errorf("backend: write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("backend: close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
