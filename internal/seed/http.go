package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) postJSON(ctx context.Context, url string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.Unmarshal(payload, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// plannedResponse is one unit of work for the submission pool.
type plannedResponse struct {
	eventID int64
	userID  string
	state   string
}

// submitResponses records planned responses concurrently with a worker pool.
func submitResponses(ctx context.Context, config *Config, client *httpClient, planned []plannedResponse, stats *Stats) {
	var recorded, failed int64

	work := make(chan plannedResponse, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				url := fmt.Sprintf("%s/events/%d/responses", config.BaseURL, p.eventID)
				status, err := client.postJSON(ctx, url, responseRequest{UserID: p.userID, State: p.state}, nil)
				if err != nil || status != http.StatusOK {
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&recorded, 1)
			}
		}()
	}

	go func() {
		defer close(work)
		for _, p := range planned {
			select {
			case <-ctx.Done():
				return
			case work <- p:
			}
		}
	}()

	wg.Wait()

	stats.ResponsesPlanned = len(planned)
	stats.ResponsesRecorded = int(atomic.LoadInt64(&recorded))
	stats.ResponsesFailed = int(atomic.LoadInt64(&failed))
}
