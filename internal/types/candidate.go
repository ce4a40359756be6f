// Package types provides type definitions for structured data used throughout the talent-hub system.
package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Record is a single decoded document as returned by the store.
type Record map[string]any

// Candidate is the baseline candidate document written on ingestion. Field names
// match the document shape shared with the external extraction tool.
type Candidate struct {
	ID     int64  `json:"ID" mapstructure:"ID"`
	Name   string `json:"Name" mapstructure:"Name"`
	Email  string `json:"Email" mapstructure:"Email"`
	CVText string `json:"CVText" mapstructure:"CVText"`
}

// DocumentKey returns the store key for the candidate.
func (c Candidate) DocumentKey() string {
	return CandidateKey(c.ID)
}

// CandidateKey returns the store key for a candidate ID.
func CandidateKey(id int64) string {
	return fmt.Sprintf("candidate::%d", id)
}

// CandidateID accepts either a JSON number or a numeric JSON string.
type CandidateID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *CandidateID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("candidate id must be an integer, got %s", string(data))
	}
	*id = CandidateID(n)
	return nil
}

// IngestRequest is the body of a candidate ingestion request.
type IngestRequest struct {
	ID     CandidateID `json:"id" validate:"required"`
	Name   string      `json:"name" validate:"required"`
	Email  string      `json:"email" validate:"required"`
	CVText string      `json:"cvText" validate:"required"`
}

// Candidate returns the baseline record for the request.
func (r *IngestRequest) Candidate() Candidate {
	return Candidate{
		ID:     int64(r.ID),
		Name:   r.Name,
		Email:  r.Email,
		CVText: r.CVText,
	}
}

// MissingFields returns the JSON names of every required field that is absent or
// empty, in declaration order. An empty result means the request is complete.
func (r *IngestRequest) MissingFields() []string {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"request"}
	}
	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fe.Field())
	}
	return fields
}

var requestValidator = newRequestValidator()

// newRequestValidator reports fields by their JSON names.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
