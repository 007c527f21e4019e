package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"timedesk/internal/domain"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	return &t, err
}

// ListForUser returns tickets the user created or is assigned to, newest
// first.
func (r *TicketRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	err := r.db.WithContext(ctx).
		Where(`creator_id = ?
			OR EXISTS (SELECT 1 FROM ticket_assignees ta WHERE ta.ticket_id = tickets.id AND ta.user_id = ?)`,
			userID, userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) AddAssignee(ctx context.Context, ticketID string, userID int64) error {
	return r.db.WithContext(ctx).Create(&domain.TicketAssignee{TicketID: ticketID, UserID: userID}).Error
}

func (r *TicketRepository) LinkProject(ctx context.Context, ticketID string, projectID int64) error {
	return r.db.WithContext(ctx).Create(&domain.TicketProject{TicketID: ticketID, ProjectID: projectID}).Error
}

// VisibleTo reports whether the user may see the ticket: creator,
// assignee, or member of a customer roster owning a linked project.
func (r *TicketRepository) VisibleTo(ctx context.Context, ticketID string, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Ticket{}).
		Where("id = ?", ticketID).
		Where(`creator_id = ?
			OR EXISTS (SELECT 1 FROM ticket_assignees ta WHERE ta.ticket_id = tickets.id AND ta.user_id = ?)
			OR EXISTS (SELECT 1 FROM ticket_projects tp
				JOIN projects p ON p.id = tp.project_id
				JOIN customer_users cu ON cu.customer_id = p.customer_id
				WHERE tp.ticket_id = tickets.id AND cu.user_id = ?)`,
			userID, userID, userID).
		Count(&count).Error
	return count > 0, err
}
