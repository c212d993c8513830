package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
)

// Provider resolves a headword against an external dictionary source. Any
// non-success response (not-found, network failure, malformed payload) is
// reported uniformly as model.ErrLookupFailed.
type Provider interface {
	Lookup(ctx context.Context, headword string) (*model.DictionaryEntry, error)
}

// Client is the HTTP dictionary collaborator. No client-side timeout is set:
// a hang stalls only the current import token, and the import pipeline's
// context remains the way to abandon it.
type Client struct {
	baseURL     string
	ttsEndpoint string
	httpClient  *http.Client
	logger      *slog.Logger
}

func NewClient(baseURL, ttsEndpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     baseURL,
		ttsEndpoint: ttsEndpoint,
		httpClient:  &http.Client{},
		logger:      logger,
	}
}

// entryPayload is the upstream wire shape.
type entryPayload struct {
	Headword    string `json:"headword"`
	Phonetic    string `json:"phonetic"`
	Definitions []string `json:"definitions"`
	Examples    []struct {
		Text        string `json:"text"`
		Translation string `json:"translation"`
		Audio       string `json:"audio"`
	} `json:"examples"`
	Audio string `json:"audio"`
}

func (c *Client) Lookup(ctx context.Context, headword string) (*model.DictionaryEntry, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("headword", headword))

	reqURL := fmt.Sprintf("%s?word=%s", c.baseURL, url.QueryEscape(headword))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lookup.Client.Lookup: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Dictionary request failed", slog.Any("error", err))
		middleware.RecordLookup(false)
		return nil, fmt.Errorf("%w: %v", model.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Dictionary returned non-OK status", slog.Int("status", resp.StatusCode))
		middleware.RecordLookup(false)
		return nil, fmt.Errorf("%w: status %d", model.ErrLookupFailed, resp.StatusCode)
	}

	var payload entryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("Dictionary payload malformed", slog.Any("error", err))
		middleware.RecordLookup(false)
		return nil, fmt.Errorf("%w: %v", model.ErrLookupFailed, err)
	}
	if payload.Headword == "" {
		middleware.RecordLookup(false)
		return nil, fmt.Errorf("%w: empty headword in payload", model.ErrLookupFailed)
	}

	// Audio comes back as a raw reference; store it resolved so clients can
	// play it directly.
	entry := &model.DictionaryEntry{
		Headword:    payload.Headword,
		Phonetic:    payload.Phonetic,
		Definitions: payload.Definitions,
		Audio:       ResolveAudioRef(payload.Audio, c.ttsEndpoint),
	}
	for _, ex := range payload.Examples {
		entry.Examples = append(entry.Examples, model.Example{
			Text:        ex.Text,
			Translation: ex.Translation,
			Audio:       ResolveAudioRef(ex.Audio, c.ttsEndpoint),
		})
	}

	middleware.RecordLookup(true)
	return entry, nil
}
