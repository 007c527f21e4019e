package attachment

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// visibleExpr is the visibility predicate: uploader, ticket creator,
// ticket assignee, or member of a customer roster owning a linked
// project. It takes the user id four times.
const visibleExpr = `attachments.creator_id = ?
	OR tickets.creator_id = ?
	OR EXISTS (SELECT 1 FROM ticket_assignees ta
		WHERE ta.ticket_id = tickets.id AND ta.user_id = ?)
	OR EXISTS (SELECT 1 FROM ticket_projects tp
		JOIN projects p ON p.id = tp.project_id
		JOIN customer_users cu ON cu.customer_id = p.customer_id
		WHERE tp.ticket_id = tickets.id AND cu.user_id = ?)`

type Repository interface {
	Create(ctx context.Context, a *Attachment) error

	// Delete removes the record unconditionally; used both by the
	// authorized delete path and by upload rollback.
	Delete(ctx context.Context, id string) error

	// FindVisible returns the attachment only when userID passes the
	// visibility predicate; absence and denial are the same ErrNotFound.
	FindVisible(ctx context.Context, id string, userID int64) (*Attachment, error)

	// FindDeletable applies the delete authorization: admins reach any
	// attachment, others only their own uploads.
	FindDeletable(ctx context.Context, id string, userID int64, admin bool) (*Attachment, error)

	ListVisibleForTicket(ctx context.Context, ticketID string, userID int64) ([]*Attachment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Attachment{}).Error
}

func (r *repository) FindVisible(ctx context.Context, id string, userID int64) (*Attachment, error) {
	var a Attachment
	err := r.db.WithContext(ctx).
		Joins("JOIN tickets ON tickets.id = attachments.ticket_id").
		Where("attachments.id = ?", id).
		Where(visibleExpr, userID, userID, userID, userID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindDeletable(ctx context.Context, id string, userID int64, admin bool) (*Attachment, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if !admin {
		q = q.Where("creator_id = ?", userID)
	}
	var a Attachment
	err := q.First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListVisibleForTicket(ctx context.Context, ticketID string, userID int64) ([]*Attachment, error) {
	var attachments []*Attachment
	err := r.db.WithContext(ctx).
		Joins("JOIN tickets ON tickets.id = attachments.ticket_id").
		Where("attachments.ticket_id = ?", ticketID).
		Where(visibleExpr, userID, userID, userID, userID).
		Order("attachments.created_at ASC").
		Find(&attachments).Error
	return attachments, err
}
