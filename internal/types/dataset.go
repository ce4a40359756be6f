package types

// Dataset is the merged result of reading every collection once.
type Dataset struct {
	Skills          []Record `json:"skills"`
	Candidates      []Record `json:"candidates"`
	CandidateSkills []Record `json:"candidate_skills"`
	Ads             []Record `json:"ads"`
	AdSkills        []Record `json:"ad_skills"`
}
