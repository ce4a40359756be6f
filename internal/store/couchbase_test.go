package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/talent-hub/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryService records the last request body and answers with a fixed response.
func queryService(t *testing.T, status int, response string, lastBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "Administrator", user)
		assert.Equal(t, "password", pass)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if lastBody != nil {
			data, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(data, lastBody))
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

func TestRunQuery_Success(t *testing.T) {
	var body map[string]any
	srv := queryService(t, http.StatusOK, `{"status":"success","results":[{"ID":1,"SkillName":"Go"},{"ID":2,"SkillName":"SQL"}]}`, &body)
	defer srv.Close()

	client := NewClient(srv.URL, "Administrator", "password", nil)
	records, err := client.RunQuery(context.Background(), SelectAll("hackathon", CollectionSkill))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Go", records[0]["SkillName"])
	assert.Equal(t, "SELECT VALUE t FROM `hackathon`._default.Skill t", body["statement"])
}

func TestRunQuery_MissingResultsIsEmpty(t *testing.T) {
	srv := queryService(t, http.StatusOK, `{"status":"success"}`, nil)
	defer srv.Close()

	records, err := NewClient(srv.URL, "Administrator", "password", nil).RunQuery(context.Background(), SelectAll("hackathon", CollectionAd))

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRunQuery_NonSuccessStatus(t *testing.T) {
	srv := queryService(t, http.StatusServiceUnavailable, `{"errors":[{"code":1000,"msg":"service unavailable"}]}`, nil)
	defer srv.Close()

	_, err := NewClient(srv.URL, "Administrator", "password", nil).RunQuery(context.Background(), SelectAll("hackathon", CollectionAd))

	require.Error(t, err)
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, http.StatusServiceUnavailable, qe.StatusCode)
	assert.Contains(t, qe.Body, "service unavailable")
}

func TestRunQuery_ErrorsInBody(t *testing.T) {
	srv := queryService(t, http.StatusOK, `{"status":"errors","errors":[{"code":3000,"msg":"syntax error"}]}`, nil)
	defer srv.Close()

	_, err := NewClient(srv.URL, "Administrator", "password", nil).RunQuery(context.Background(), SelectAll("hackathon", CollectionAd))

	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Contains(t, qe.Body, "syntax error")
}

func TestCouchbaseStore_InsertCandidate(t *testing.T) {
	var body map[string]any
	srv := queryService(t, http.StatusOK, `{"status":"success","results":[]}`, &body)
	defer srv.Close()

	s, err := NewCouchbaseStore(NewClient(srv.URL, "Administrator", "password", nil), "hackathon")
	require.NoError(t, err)

	err = s.InsertCandidate(context.Background(), types.Candidate{ID: 5, Name: "Ada", Email: "ada@example.com", CVText: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "candidate::5", body["$key"])
	assert.Equal(t, "Ada", body["$name"])
}

func TestCouchbaseStore_InsertCandidate_DuplicateKey(t *testing.T) {
	srv := queryService(t, http.StatusOK, `{"status":"errors","errors":[{"code":12009,"msg":"Duplicate Key: candidate::5"}]}`, nil)
	defer srv.Close()

	s, err := NewCouchbaseStore(NewClient(srv.URL, "Administrator", "password", nil), "hackathon")
	require.NoError(t, err)

	err = s.InsertCandidate(context.Background(), types.Candidate{ID: 5, Name: "Ada", Email: "ada@example.com", CVText: "Go"})
	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "candidate::5", dup.Key)

	var qe *QueryError
	assert.True(t, errors.As(err, &qe))
}

func TestCouchbaseStore_GetCandidate(t *testing.T) {
	var body map[string]any
	srv := queryService(t, http.StatusOK, `{"status":"success","results":[{"ID":5,"Name":"Ada","Email":"ada@example.com","CVText":"Go"}]}`, &body)
	defer srv.Close()

	s, err := NewCouchbaseStore(NewClient(srv.URL, "Administrator", "password", nil), "hackathon")
	require.NoError(t, err)

	c, err := s.GetCandidate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, "candidate::5", body["$key"])
}

func TestCouchbaseStore_GetCandidate_NotFound(t *testing.T) {
	srv := queryService(t, http.StatusOK, `{"status":"success","results":[]}`, nil)
	defer srv.Close()

	s, err := NewCouchbaseStore(NewClient(srv.URL, "Administrator", "password", nil), "hackathon")
	require.NoError(t, err)

	_, err = s.GetCandidate(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewCouchbaseStore_InvalidBucket(t *testing.T) {
	_, err := NewCouchbaseStore(NewClient("http://localhost", "u", "p", nil), "bad`name")
	assert.Error(t, err)
}
