package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"timedesk/internal/database"
	"timedesk/internal/domain"
	"timedesk/internal/domain/timer"
	"timedesk/internal/pkg/token"
)

func main() {
	db, err := database.Connect("timedesk.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM attachments")
	db.Exec("DELETE FROM time_entries")
	db.Exec("DELETE FROM ticket_projects")
	db.Exec("DELETE FROM ticket_assignees")
	db.Exec("DELETE FROM tickets")
	db.Exec("DELETE FROM projects")
	db.Exec("DELETE FROM customer_users")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@timedesk.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
		Language:     "en",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}

	agentHash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
	agents := make([]domain.User, 0, 3)
	for _, a := range []struct{ email, name, lang string }{
		{"alice@timedesk.local", "Alice", "en"},
		{"bruno@timedesk.local", "Bruno", "de"},
		{"carla@timedesk.local", "Carla", "en"},
	} {
		u := domain.User{
			Email:        a.email,
			PasswordHash: string(agentHash),
			Role:         domain.RoleAgent,
			Name:         a.name,
			Language:     a.lang,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal(err)
		}
		agents = append(agents, u)
	}

	log.Println("Creating customers and projects...")

	acme := domain.Customer{Name: "Acme GmbH"}
	if err := db.Create(&acme).Error; err != nil {
		log.Fatal(err)
	}
	// Carla sits on the Acme roster, so she sees Acme project tickets.
	if err := db.Create(&domain.CustomerUser{CustomerID: acme.ID, UserID: agents[2].ID}).Error; err != nil {
		log.Fatal(err)
	}

	website := domain.Project{Name: "Website relaunch", CustomerID: &acme.ID}
	if err := db.Create(&website).Error; err != nil {
		log.Fatal(err)
	}
	internalProj := domain.Project{Name: "Internal tooling"}
	if err := db.Create(&internalProj).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Creating tickets...")

	for i, t := range []struct {
		creator  int64
		title    string
		assignee int64
		project  *int64
	}{
		{agents[0].ID, "Printer on floor 2 jams", agents[1].ID, nil},
		{agents[0].ID, "Staging deploy broken", agents[1].ID, &website.ID},
		{agents[1].ID, "Quarterly report numbers off", agents[0].ID, &internalProj.ID},
	} {
		id, err := token.New()
		if err != nil {
			log.Fatal(err)
		}
		tk := domain.Ticket{
			ID:        id,
			CreatorID: t.creator,
			Title:     t.title,
			State:     domain.TicketOpen,
		}
		if err := db.Create(&tk).Error; err != nil {
			log.Fatal(err)
		}
		if err := db.Create(&domain.TicketAssignee{TicketID: tk.ID, UserID: t.assignee}).Error; err != nil {
			log.Fatal(err)
		}
		if t.project != nil {
			if err := db.Create(&domain.TicketProject{TicketID: tk.ID, ProjectID: *t.project}).Error; err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("ticket %d: %s (%s)", i+1, tk.ID, tk.Title)
	}

	log.Println("Creating time entries...")

	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	endAt := yesterday.Add(2 * time.Hour)
	endType := "manual"
	closed := timer.TimeEntry{
		UserID:    agents[0].ID,
		StartAt:   yesterday,
		StartType: "manual",
		EndAt:     &endAt,
		EndType:   &endType,
		Seconds:   int64(endAt.Sub(yesterday) / time.Second),
	}
	if err := db.Create(&closed).Error; err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Println("  admin@timedesk.local / admin123")
	log.Println("  alice@timedesk.local / agent123 (also bruno, carla)")
}
