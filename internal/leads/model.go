package leads

import "time"

// Lead is a potential customer captured by a sales agent.
type Lead struct {
	ID         int64     `json:"id"`
	AgentID    int64     `json:"agent_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	ProvinceID int64     `json:"province_id,omitempty"`
	DistrictID int64     `json:"district_id,omitempty"`
	WardID     int64     `json:"ward_id,omitempty"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
