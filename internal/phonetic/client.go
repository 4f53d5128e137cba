package phonetic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/logging"
)

// NoTranscription is stored for words the dictionary cannot transcribe.
const NoTranscription = "no transcription available"

// Entry is the transcription of one word.
type Entry struct {
	Word          string `json:"word"`
	Transcription string `json:"transcription"`
}

// Found reports whether the entry holds a real transcription.
func (e Entry) Found() bool {
	return e.Transcription != NoTranscription
}

// Client looks up IPA transcriptions from a dictionary API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
	logger      *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithConcurrency bounds how many lookups LookupAll runs at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the dictionary API rooted at baseURL.
// Words are appended as the final path segment.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		concurrency: 4,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dictionaryEntry is one element of the dictionary API's top-level array.
type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
}

// Lookup returns the transcription of word. It never fails: any lookup problem yields
// the NoTranscription sentinel. The transcription is returned as the API sent it.
func (c *Client) Lookup(ctx context.Context, word string) Entry {
	ipa, err := c.fetch(ctx, word)
	if err != nil {
		c.logger.Debug("Phonetic lookup fell back to sentinel", "word", word, "error", err)
		return Entry{Word: word, Transcription: NoTranscription}
	}
	return Entry{Word: word, Transcription: ipa}
}

func (c *Client) fetch(ctx context.Context, word string) (string, error) {
	key := strings.ToLower(word)
	if key == "" {
		return "", apperrors.NewPhoneticLookupFailedError(word, fmt.Errorf("empty word"))
	}

	reqURL := c.baseURL + "/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", apperrors.NewPhoneticLookupFailedError(word, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewPhoneticLookupFailedError(word, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewPhoneticLookupFailedError(word, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewPhoneticLookupFailedError(word, err)
	}

	var entries []dictionaryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", apperrors.NewPhoneticLookupFailedError(word, fmt.Errorf("failed to parse response: %w", err))
	}

	ipa, ok := selectTranscription(entries)
	if !ok {
		return "", apperrors.NewPhoneticLookupFailedError(word, fmt.Errorf("no transcription in response"))
	}
	return ipa, nil
}

// selectTranscription picks a transcription from the first entry's phonetics:
//
//  1. the first non-empty text containing "/" (slash-delimited IPA), else
//  2. the first non-empty text.
//
// Later entries are not consulted.
func selectTranscription(entries []dictionaryEntry) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	phonetics := entries[0].Phonetics

	rules := []func(string) bool{
		func(s string) bool { return s != "" && strings.Contains(s, "/") },
		func(s string) bool { return s != "" },
	}
	for _, matches := range rules {
		for _, p := range phonetics {
			if matches(p.Text) {
				return p.Text, true
			}
		}
	}
	return "", false
}

// LookupAll transcribes each word concurrently and returns entries in input order.
// Successful transcriptions are passed through Simplify; failed ones hold the sentinel.
func (c *Client) LookupAll(ctx context.Context, words []string) []Entry {
	entries := make([]Entry, len(words))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, word := range words {
		g.Go(func() error {
			e := c.Lookup(ctx, word)
			if e.Found() {
				e.Transcription = Simplify(e.Transcription)
			}
			entries[i] = e
			return nil
		})
	}
	// Lookups never return errors.
	_ = g.Wait()

	return entries
}

// simplifier collapses IPA symbols to ASCII-friendlier forms.
var simplifier = strings.NewReplacer(
	"\u0279", "r", // ɹ alveolar approximant
	"\u031a", "", // combining "no audible release", as in p̚
	"\u0294", "", // ʔ glottal stop
)

// Simplify applies the cosmetic IPA substitution table. The sentinel passes through.
func Simplify(ipa string) string {
	if ipa == NoTranscription {
		return ipa
	}
	return simplifier.Replace(ipa)
}
