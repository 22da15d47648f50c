package dtos

// CandidateFeedRecord is one candidate row as the regulatory feed publishes
// it.
type CandidateFeedRecord struct {
	FECCandidateID string  `json:"fec_candidate_id"`
	Name           string  `json:"name"`
	Party          string  `json:"party"`
	Office         string  `json:"office"`
	State          string  `json:"state"`
	District       *string `json:"district"`
	ElectionYear   int     `json:"election_year"`
}

// CandidateFeedPage is one page of the paginated feed.
type CandidateFeedPage struct {
	Results    []CandidateFeedRecord `json:"results"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	TotalRows  int                   `json:"total_rows"`
}
