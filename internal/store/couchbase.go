package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/talent-hub/internal/types"
)

// duplicateKeyCode is the query service error code for an INSERT on an existing key.
const duplicateKeyCode = 12009

// Client posts statements to a Couchbase query service endpoint.
type Client struct {
	queryURL   string
	user       string
	password   string
	httpClient *http.Client
}

// NewClient creates a query client. A nil httpClient uses http.DefaultClient.
func NewClient(queryURL, user, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		queryURL:   queryURL,
		user:       user,
		password:   password,
		httpClient: httpClient,
	}
}

// queryResponse is the subset of the query service response we read.
type queryResponse struct {
	Status  string            `json:"status"`
	Results []json.RawMessage `json:"results"`
	Errors  []queryErrorEntry `json:"errors"`
}

type queryErrorEntry struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// RunQuery executes a statement and returns its results. A non-success response
// yields a *QueryError carrying the raw body. Missing results decode as an empty
// slice.
func (c *Client) RunQuery(ctx context.Context, stmt Statement) ([]Record, error) {
	payload, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statement: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.queryURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read query response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed queryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	if len(parsed.Errors) > 0 || (parsed.Status != "" && parsed.Status != "success") {
		return nil, &QueryError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	records := make([]Record, 0, len(parsed.Results))
	for _, raw := range parsed.Results {
		record, err := decodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode query result: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// CouchbaseStore implements Store over the query service.
type CouchbaseStore struct {
	client *Client
	bucket string
}

// NewCouchbaseStore returns a store issuing statements against bucket.
func NewCouchbaseStore(client *Client, bucket string) (*CouchbaseStore, error) {
	if err := ValidateBucket(bucket); err != nil {
		return nil, err
	}
	return &CouchbaseStore{client: client, bucket: bucket}, nil
}

// InsertCandidate implements Store.
func (s *CouchbaseStore) InsertCandidate(ctx context.Context, c types.Candidate) error {
	_, err := s.client.RunQuery(ctx, InsertCandidate(s.bucket, c))
	if err != nil {
		if isDuplicateKey(err) {
			return &DuplicateKeyError{Key: c.DocumentKey(), Cause: err}
		}
		return err
	}
	return nil
}

// GetCandidate implements Store.
func (s *CouchbaseStore) GetCandidate(ctx context.Context, id int64) (*types.Candidate, error) {
	records, err := s.client.RunQuery(ctx, SelectCandidate(s.bucket, id))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return DecodeCandidate(records[0])
}

// List implements Store.
func (s *CouchbaseStore) List(ctx context.Context, collection Collection) ([]Record, error) {
	return s.client.RunQuery(ctx, SelectAll(s.bucket, collection))
}

// Close implements Store. The query client holds no connections of its own.
func (s *CouchbaseStore) Close() error {
	return nil
}

// isDuplicateKey reports whether a query error is the duplicate-key error.
func isDuplicateKey(err error) bool {
	qe, ok := err.(*QueryError)
	if !ok {
		return false
	}
	var parsed queryResponse
	if jsonErr := json.Unmarshal([]byte(qe.Body), &parsed); jsonErr == nil {
		for _, e := range parsed.Errors {
			if e.Code == duplicateKeyCode {
				return true
			}
		}
	}
	return strings.Contains(qe.Body, "Duplicate Key")
}
