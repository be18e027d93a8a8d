package model

// PostFilter holds criteria for querying posts. Owner is always set by the
// caller; every query is owner-scoped.
type PostFilter struct {
	Owner      string     `json:"owner,omitempty"`
	Status     []Status   `json:"status,omitempty"`
	Platform   []Platform `json:"platform,omitempty"`
	CampaignID string     `json:"campaign_id,omitempty"`
	ProjectID  string     `json:"project_id,omitempty"`
	Search     string     `json:"search,omitempty"` // substring match on content text
	DueOnly    bool       `json:"due_only,omitempty"`
	Sort       string     `json:"sort,omitempty"` // e.g. "-scheduled_at"; prefix "-" = descending
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}
