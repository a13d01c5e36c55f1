package tequila

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"farescan-service/internal/domain/entity"
	"farescan-service/internal/domain/repository"
	"farescan-service/pkg/logger"
)

const dateParamLayout = "02/01/2006"

// Client calls the Tequila fare-search API. It remembers the HTTP status and
// request URL of the most recent call so the orchestrator can log and persist
// them; it is not safe for concurrent use, matching the one-scan-per-process
// model.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger

	lastStatus int
	lastURL    string
}

// NewClient creates a new Tequila client
func NewClient(baseURL, apiKey string, logger logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

var _ repository.FareClient = (*Client)(nil)

// Search runs one fare search for the given origin and date window.
func (c *Client) Search(ctx context.Context, origin string, rangeStart, rangeEnd time.Time, params repository.SearchParams) (*entity.Snapshot, error) {
	query := url.Values{}
	query.Set("fly_from", origin)
	query.Set("date_from", rangeStart.Format(dateParamLayout))
	query.Set("date_to", rangeEnd.Format(dateParamLayout))
	query.Set("nights_in_dst_from", strconv.Itoa(params.NightsInDestFrom))
	query.Set("nights_in_dst_to", strconv.Itoa(params.NightsInDestTo))
	query.Set("limit", strconv.Itoa(params.Limit))
	if params.Currency != "" {
		query.Set("curr", params.Currency)
	}

	searchURL := fmt.Sprintf("%s/v2/search?%s", c.baseURL, query.Encode())
	c.lastStatus = 0
	c.lastURL = searchURL

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call fare search: %w", err)
	}
	defer resp.Body.Close()

	c.lastStatus = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("fare search returned status %d: %v", resp.StatusCode, errorBody)
	}

	var snapshot entity.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	c.logger.Debug("Fare search completed",
		"searchID", snapshot.SearchID,
		"results", snapshot.Results)

	return &snapshot, nil
}

// StatusCode reports the HTTP status of the most recent Search call.
func (c *Client) StatusCode() int {
	return c.lastStatus
}

// SearchURL reports the request URL of the most recent Search call.
func (c *Client) SearchURL() string {
	return c.lastURL
}
