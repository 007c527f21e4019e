package domain

import "time"

// Customer groups projects and carries a user roster. Roster members
// may read attachments on any ticket linked to one of the customer's
// projects.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// CustomerUser is one roster membership.
type CustomerUser struct {
	CustomerID int64 `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	UserID     int64 `gorm:"column:user_id;primaryKey" json:"user_id"`
}

func (CustomerUser) TableName() string { return "customer_users" }

type Project struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name" json:"name"`
	CustomerID *int64    `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Project) TableName() string { return "projects" }
