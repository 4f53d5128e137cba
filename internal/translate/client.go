package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ironsheep/screen-translator/internal/config"
	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/logging"
)

// Result is a successful translation.
type Result struct {
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
}

// Client sends signed translate requests to the remote API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	salt       SaltFunc
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSalt replaces the nonce source.
func WithSalt(fn SaltFunc) Option {
	return func(c *Client) { c.salt = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the translate endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		salt:       RandomSalt,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse covers both the success and the error body shapes.
type apiResponse struct {
	ErrorCode   *flexString     `json:"error_code"`
	ErrorMsg    string          `json:"error_msg"`
	TransResult json.RawMessage `json:"trans_result"`
}

type segment struct {
	Src string  `json:"src"`
	Dst *string `json:"dst"`
}

// flexString accepts a JSON string or number. The API has sent error_code as both.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("error_code is neither string nor number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// Translate translates text from one language to another in a single signed request.
//
// Every failure is a TRANSLATION_FAILED error except empty input, which is
// INVALID_ARGUMENT. Errors reported by the API keep its error_code in RemoteCode.
// There is no retry.
func (c *Client) Translate(ctx context.Context, text, from, to string, creds config.Credentials) (*Result, error) {
	if text == "" {
		return nil, apperrors.NewInvalidArgumentError(apperrors.StageTranslate, "text to translate is empty")
	}

	salt := c.salt()
	q := url.Values{}
	q.Set("q", text)
	q.Set("from", from)
	q.Set("to", to)
	q.Set("appid", creds.AppID)
	q.Set("salt", salt)
	q.Set("sign", Sign(creds.AppID, text, salt, creds.SecretKey))

	reqURL := c.endpoint
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + q.Encode()
	} else {
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewTranslationFailedError("failed to create translate request", err)
	}

	c.logger.Debug("Sending translate request", "from", from, "to", to, "chars", len(text))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTranslationFailedError("translate request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTranslationFailedError("failed to read translate response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTranslationFailedError(
			fmt.Sprintf("translate API returned status %d", resp.StatusCode), nil)
	}

	translated, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	return &Result{
		SourceText:     text,
		TranslatedText: translated,
	}, nil
}

// parseResponse extracts the concatenated translation or the remote error.
func parseResponse(body []byte) (string, error) {
	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", apperrors.NewTranslationFailedError("invalid response shape", err)
	}

	// Any error_code key fails the request, even a null one.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", apperrors.NewTranslationFailedError("invalid response shape", err)
	}
	if raw, ok := fields["error_code"]; ok {
		code := string(bytes.TrimSpace(raw))
		if parsed.ErrorCode != nil {
			code = string(*parsed.ErrorCode)
		}
		return "", apperrors.NewRemoteTranslationError(code, parsed.ErrorMsg)
	}

	if len(parsed.TransResult) == 0 || bytes.Equal(parsed.TransResult, []byte("null")) {
		return "", apperrors.NewTranslationFailedError("invalid response shape: trans_result missing", nil)
	}

	var segments []segment
	if err := json.Unmarshal(parsed.TransResult, &segments); err != nil {
		return "", apperrors.NewTranslationFailedError("invalid response shape: trans_result is not a list", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if seg.Dst != nil {
			b.WriteString(*seg.Dst)
		}
	}

	if b.Len() == 0 {
		return "", apperrors.NewTranslationFailedError("empty result", nil)
	}

	return b.String(), nil
}
