package attachment

import (
	"path/filepath"
	"time"
)

// Attachment is one uploaded file bound to a ticket. The id is the
// on-disk filename stem; a database row exists iff the file exists at
// the derived path, apart from the narrow crash windows the write and
// delete protocols document in service.go.
type Attachment struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Extension   string    `gorm:"column:extension" json:"extension"`
	Size        int64     `gorm:"column:size" json:"size"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	CreatorID   int64     `gorm:"column:creator_id;index" json:"creator_id"`
	TicketID    string    `gorm:"column:ticket_id;index" json:"ticket_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Attachment) TableName() string { return "attachments" }

// Path derives the storage location under root:
// <root>/<ticketID>/<id><extension>. Both path components are validated
// opaque tokens before any caller gets here.
func (a *Attachment) Path(root string) string {
	return filepath.Join(root, a.TicketID, a.ID+a.Extension)
}
