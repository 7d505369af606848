package export

import (
	"errors"
	"time"
)

var ErrRecordNotFound = errors.New("export record not found")

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Record is the audit row of one export attempt. It deliberately holds no
// form values.
type Record struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"-"`
	RecordID     string     `gorm:"size:36;uniqueIndex:ux_exports_record_id" json:"record_id"`
	SessionID    string     `gorm:"size:32;index:idx_exports_session" json:"session_id"`
	Status       Status     `gorm:"size:16;index:idx_exports_status;default:in_progress" json:"status"`
	RasterWidth  int        `json:"raster_width"`
	RasterHeight int        `json:"raster_height"`
	OffsetX      float64    `gorm:"type:decimal(8,2)" json:"offset_x"`
	OffsetY      float64    `gorm:"type:decimal(8,2)" json:"offset_y"`
	RenderWidth  float64    `gorm:"type:decimal(8,2)" json:"render_width"`
	RenderHeight float64    `gorm:"type:decimal(8,2)" json:"render_height"`
	Bytes        int        `json:"bytes"`
	Error        string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt    time.Time  `gorm:"autoCreateTime" json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

func (Record) TableName() string { return "exports" }
