package store

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/jonathan/talent-hub/internal/types"
)

// Statement is a query-service statement with its named parameters. Parameter names
// are given without the leading "$".
type Statement struct {
	Text   string
	Params map[string]any
}

// MarshalJSON renders the request body the query service expects:
// {"statement": ..., "$name": value, ...}.
func (s Statement) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(s.Params)+1)
	for name, value := range s.Params {
		body["$"+name] = value
	}
	body["statement"] = s.Text
	return json.Marshal(body)
}

var bucketNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.%-]{1,100}$`)

// ValidateBucket rejects names that cannot be spliced into a keyspace path.
func ValidateBucket(bucket string) error {
	if !bucketNamePattern.MatchString(bucket) {
		return fmt.Errorf("invalid bucket name %q", bucket)
	}
	return nil
}

// keyspace returns the fully qualified keyspace of a collection in the default scope.
func keyspace(bucket string, collection Collection) string {
	return fmt.Sprintf("`%s`._default.%s", bucket, collection)
}

// SelectAll reads every document of a collection as a bare value.
func SelectAll(bucket string, collection Collection) Statement {
	return Statement{
		Text: fmt.Sprintf("SELECT VALUE t FROM %s t", keyspace(bucket, collection)),
	}
}

// SelectCandidate reads a single candidate by document key.
func SelectCandidate(bucket string, id int64) Statement {
	return Statement{
		Text: fmt.Sprintf("SELECT VALUE t FROM %s t USE KEYS $key", keyspace(bucket, CollectionCandidate)),
		Params: map[string]any{
			"key": types.CandidateKey(id),
		},
	}
}

// InsertCandidate writes the baseline candidate document. Every caller-supplied
// value travels as a named parameter.
func InsertCandidate(bucket string, c types.Candidate) Statement {
	return Statement{
		Text: fmt.Sprintf(
			`INSERT INTO %s (KEY, VALUE) VALUES ($key, { "ID": $id, "Name": $name, "Email": $email, "CVText": $cvText })`,
			keyspace(bucket, CollectionCandidate),
		),
		Params: map[string]any{
			"key":    c.DocumentKey(),
			"id":     c.ID,
			"name":   c.Name,
			"email":  c.Email,
			"cvText": c.CVText,
		},
	}
}
