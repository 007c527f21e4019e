package domain

import "time"

type TicketState string

const (
	TicketOpen   TicketState = "open"
	TicketClosed TicketState = "closed"
)

// Ticket is identified by an opaque fixed-format token rather than a
// numeric id; the token doubles as the attachment directory name on
// disk.
type Ticket struct {
	ID        string      `gorm:"column:id;primaryKey" json:"id"`
	CreatorID int64       `gorm:"column:creator_id;index" json:"creator_id"`
	Title     string      `gorm:"column:title" json:"title"`
	State     TicketState `gorm:"column:state" json:"state"`
	CreatedAt time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }

// TicketAssignee links a ticket to a user working on it.
type TicketAssignee struct {
	TicketID string `gorm:"column:ticket_id;primaryKey" json:"ticket_id"`
	UserID   int64  `gorm:"column:user_id;primaryKey" json:"user_id"`
}

func (TicketAssignee) TableName() string { return "ticket_assignees" }

// TicketProject links a ticket to an owning project.
type TicketProject struct {
	TicketID  string `gorm:"column:ticket_id;primaryKey" json:"ticket_id"`
	ProjectID int64  `gorm:"column:project_id;primaryKey" json:"project_id"`
}

func (TicketProject) TableName() string { return "ticket_projects" }
