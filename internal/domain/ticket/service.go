package ticket

import (
	"context"
	"errors"
	"fmt"

	"timedesk/internal/domain"
	"timedesk/internal/pkg/token"
	"timedesk/internal/repository"
)

// Service is thin ticket CRUD. Tickets exist mostly to anchor the
// attachment visibility relations: assignees and project links decide
// who sees what.
type Service struct {
	tickets *repository.TicketRepository
}

func NewService(tickets *repository.TicketRepository) *Service {
	return &Service{tickets: tickets}
}

// Exists reports whether a ticket id is known. Used by the attachment
// store before it reserves an upload.
func (s *Service) Exists(ctx context.Context, ticketID string) (bool, error) {
	_, err := s.tickets.GetByID(ctx, ticketID)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Create(ctx context.Context, principal domain.Principal, title string) (*domain.Ticket, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}

	id, err := token.New()
	if err != nil {
		return nil, fmt.Errorf("generating ticket id: %w", err)
	}

	t := &domain.Ticket{
		ID:        id,
		CreatorID: principal.ID,
		Title:     title,
		State:     domain.TicketOpen,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns a ticket the principal may see; admins see everything,
// everyone else needs the visibility predicate to hold.
func (s *Service) Get(ctx context.Context, principal domain.Principal, id string) (*domain.Ticket, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !token.Valid(id) {
		return nil, ErrNotFound
	}

	if !principal.IsAdmin() {
		visible, err := s.tickets.VisibleTo(ctx, id, principal.ID)
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, ErrNotFound
		}
	}

	t, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (s *Service) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Ticket, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.tickets.ListForUser(ctx, principal.ID)
}

func (s *Service) Assign(ctx context.Context, principal domain.Principal, ticketID string, userID int64) error {
	t, err := s.requireOwnership(ctx, principal, ticketID)
	if err != nil {
		return err
	}
	return s.tickets.AddAssignee(ctx, t.ID, userID)
}

func (s *Service) LinkProject(ctx context.Context, principal domain.Principal, ticketID string, projectID int64) error {
	t, err := s.requireOwnership(ctx, principal, ticketID)
	if err != nil {
		return err
	}
	return s.tickets.LinkProject(ctx, t.ID, projectID)
}

func (s *Service) requireOwnership(ctx context.Context, principal domain.Principal, ticketID string) (*domain.Ticket, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !token.Valid(ticketID) {
		return nil, ErrNotFound
	}

	t, err := s.tickets.GetByID(ctx, ticketID)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin() && t.CreatorID != principal.ID {
		return nil, ErrForbidden
	}
	return t, nil
}
