package types

import (
	"encoding/json"
	"strings"
)

// SummaryRequest is the body of a summary request. candidate_data is usually a
// string; any other JSON value is passed to the model as its JSON text.
type SummaryRequest struct {
	CandidateData json.RawMessage `json:"candidate_data"`
}

// Text returns the candidate data as model input, or "" when absent or empty.
func (r *SummaryRequest) Text() string {
	raw := strings.TrimSpace(string(r.CandidateData))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.CandidateData, &s); err == nil {
		return s
	}
	switch raw {
	case "{}", "[]", `""`, "false", "0":
		return ""
	}
	return raw
}

// SummaryResponse is the body returned by the summary endpoint.
type SummaryResponse struct {
	Summary string `json:"summary"`
}
