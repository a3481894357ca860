package model

import "time"

// Generation job lifecycle. Jobs move queued -> processing -> completed or
// failed; there are no other transitions.
const (
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// GenerationJob tracks one design-generation request on the backend.
type GenerationJob struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress_pct"`
	Error     string    `json:"error,omitempty"`
	DesignIDs []string  `json:"design_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Done reports whether the job reached a terminal state.
func (j GenerationJob) Done() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// Design is one rendered redesign proposal for a room.
type Design struct {
	ID           string    `json:"id"`
	RoomID       string    `json:"room_id"`
	Style        string    `json:"style"`
	Palette      string    `json:"palette,omitempty"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	EstimatedUSD float64   `json:"estimated_cost_usd,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DesignBrief describes what the user wants generated. It crosses the wire
// as JSON and is read from brief files as YAML, hence the double tags.
type DesignBrief struct {
	Style     string   `json:"style" yaml:"style"`
	Palette   string   `json:"palette,omitempty" yaml:"palette"`
	BudgetUSD float64  `json:"budget_usd,omitempty" yaml:"budget_usd"`
	KeepItems []string `json:"keep_items,omitempty" yaml:"keep_items"`
	Notes     string   `json:"notes,omitempty" yaml:"notes"`
	Variants  int      `json:"variants,omitempty" yaml:"variants"`
}
