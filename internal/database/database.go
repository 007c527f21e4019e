package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" database/sql driver the sqlite
	// gorm config below refers to.
	_ "modernc.org/sqlite"

	"timedesk/internal/domain"
	"timedesk/internal/domain/attachment"
	"timedesk/internal/domain/timer"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every timedesk table,
// including the partial unique index guarding open time entries.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.CustomerUser{},
		&domain.Project{},
		&domain.Ticket{},
		&domain.TicketAssignee{},
		&domain.TicketProject{},
		&timer.TimeEntry{},
		&attachment.Attachment{},
	)
}
