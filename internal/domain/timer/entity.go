package timer

import "time"

// DefaultSource tags entries toggled without an explicit source.
const DefaultSource = "API"

// TimeEntry is one work session. An entry with no EndAt is "open"; the
// partial unique index below keeps at most one open entry per user no
// matter how toggles interleave.
type TimeEntry struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64      `gorm:"column:user_id;index:idx_open_time_entry,unique,where:end_at IS NULL" json:"user_id"`
	StartAt   time.Time  `gorm:"column:start_at" json:"start_at"`
	StartType string     `gorm:"column:start_type" json:"start_type"`
	EndAt     *time.Time `gorm:"column:end_at" json:"end_at,omitempty"`
	EndType   *string    `gorm:"column:end_type" json:"end_type,omitempty"`
	Seconds   int64      `gorm:"column:seconds" json:"seconds"`
	Notes     *string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (TimeEntry) TableName() string { return "time_entries" }

// Open reports whether the entry is still running.
func (e *TimeEntry) Open() bool { return e.EndAt == nil }
