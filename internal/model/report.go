package model

import "time"

// VastuReport is the backend's rule-based orientation analysis of a room.
type VastuReport struct {
	RoomID     string      `json:"room_id"`
	Score      int         `json:"score"` // 0-100
	Grade      string      `json:"grade"`
	Facing     string      `json:"facing"`
	Summary    string      `json:"summary"`
	Zones      []VastuZone `json:"zones"`
	Remedies   []string    `json:"remedies,omitempty"`
	ComputedAt time.Time   `json:"computed_at"`
}

// VastuZone scores one directional zone of the room. Zone names come from
// the backend and include intercardinals ("north_east"), so they stay
// strings rather than compass cardinals.
type VastuZone struct {
	Zone    string `json:"zone"`
	Element string `json:"element"`
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
	Advice  string `json:"advice,omitempty"`
}

// CostEstimate is the itemized price of realizing a design.
type CostEstimate struct {
	DesignID    string         `json:"design_id"`
	Currency    string         `json:"currency"`
	Items       []EstimateItem `json:"items"`
	Subtotal    float64        `json:"subtotal"`
	Tax         float64        `json:"tax"`
	Total       float64        `json:"total"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// EstimateItem is a single line of a cost estimate.
type EstimateItem struct {
	Label    string  `json:"label"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	UnitCost float64 `json:"unit_cost"`
	Subtotal float64 `json:"subtotal"`
}
