package gorm

import "time"

// Candidate is read-only reference data refreshed wholesale by the regulatory
// feed import job. Application code never mutates individual rows.
type Candidate struct {
	ID             string    `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	FECCandidateID string    `gorm:"column:fec_candidate_id;uniqueIndex"`
	Name           string    `gorm:"column:name"`
	Party          string    `gorm:"column:party"`
	Office         string    `gorm:"column:office"`
	State          string    `gorm:"column:state"`
	District       *string   `gorm:"column:district"`
	ElectionYear   int       `gorm:"column:election_year"`
	ImportedAt     time.Time `gorm:"column:imported_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Candidate) TableName() string {
	return "candidates"
}

// CandidateSyncHistory records each feed refresh for observability.
type CandidateSyncHistory struct {
	ID          string     `gorm:"column:id;primaryKey;type:uuid;default:(gen_random_uuid())"`
	StartedAt   time.Time  `gorm:"column:started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	RowCount    int        `gorm:"column:row_count"`
	Status      string     `gorm:"column:status"`
	Error       *string    `gorm:"column:error"`
}

// TableName specifies the table name for GORM
func (CandidateSyncHistory) TableName() string {
	return "candidate_sync_history"
}
