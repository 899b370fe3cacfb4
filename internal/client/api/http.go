package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/parley-chat/parley/internal/client/models"
	"github.com/parley-chat/parley/internal/common"
	"github.com/parley-chat/parley/internal/logging"
)

const userPath = "/api/user"

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the account service at baseURL.
// The timeout applies per request. tokens may not be nil; pass
// StaticToken("") for unauthenticated use.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Close() error {
	c.httpc.CloseIdleConnections()
	return nil
}

// userEnvelope matches the server's {"user": {...}} framing.
type userEnvelope struct {
	User models.User `json:"user"`
}

type errorEnvelope struct {
	Errors map[string][]string `json:"errors"`
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var env userEnvelope
	if err := c.doJSON(ctx, http.MethodGet, userPath, nil, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, patch UserPatch) (*models.User, error) {
	body := struct {
		User UserPatch `json:"user"`
	}{User: patch}

	var env userEnvelope
	if err := c.doJSON(ctx, http.MethodPut, userPath, body, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *HTTPClient) AvatarUploadURL(ctx context.Context, filename string) (string, string, error) {
	body := struct {
		Filename string `json:"filename"`
	}{Filename: filename}

	var resp struct {
		UploadURL string `json:"upload_url"`
		PublicURL string `json:"public_url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, userPath+"/avatar-url", body, &resp); err != nil {
		return "", "", err
	}
	return resp.UploadURL, resp.PublicURL, nil
}

// doJSON performs one API round-trip: encode body (if any), attach the
// bearer token, map the response status onto the package error taxonomy,
// decode a 2xx body into out (if non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp); err != nil {
		c.log.Debug(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus converts a non-2xx response into an error.
//
// 401/403 always become ErrUnauthorized, before and regardless of any body
// parsing. 422 bodies of the form {"errors": {field: [messages]}} become a
// *ValidationError. 5xx means the server is unhealthy and maps to
// ErrUnavailable.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var env errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || len(env.Errors) == 0 {
			return &ValidationError{}
		}
		return &ValidationError{Fields: env.Errors}
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	default:
		return fmt.Errorf("api error: %s", resp.Status)
	}
}
