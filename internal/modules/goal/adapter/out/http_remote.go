package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"planr/internal/modules/goal/domain"
	goalout "planr/internal/modules/goal/port/out"
	"planr/internal/platform/id"
)

const maxResponseBytes = 4 << 20

type HTTPRemote struct {
	baseURL string
	client  *http.Client
	ids     id.Generator
}

func NewHTTPRemote(baseURL string, timeout time.Duration, ids id.Generator) goalout.RemoteGoals {
	return NewHTTPRemoteWithClient(baseURL, &http.Client{Timeout: timeout}, ids)
}

func NewHTTPRemoteWithClient(baseURL string, client *http.Client, ids id.Generator) goalout.RemoteGoals {
	return &HTTPRemote{baseURL: strings.TrimRight(baseURL, "/"), client: client, ids: ids}
}

// FetchSince calls GET {base}/goals?since=<iso>. 204 and an empty body mean
// no data.
func (r *HTTPRemote) FetchSince(ctx context.Context, token string, since time.Time) ([]domain.Goal, error) {
	endpoint := r.baseURL + "/goals?" + url.Values{"since": {domain.FormatISO(since)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build goals request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if r.ids != nil {
		req.Header.Set("X-Request-ID", r.ids.New())
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotModified {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read goals response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch goals: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	var goals []domain.Goal
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("decode goals response: %w", err)
	}
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("decode goals response: %w", err)
		}
	}
	return goals, nil
}
