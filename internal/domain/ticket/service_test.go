package ticket_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"timedesk/internal/database"
	"timedesk/internal/domain"
	"timedesk/internal/domain/ticket"
	"timedesk/internal/pkg/token"
	"timedesk/internal/repository"
)

func setupService(t *testing.T) (*ticket.Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ticket_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return ticket.NewService(repository.NewTicketRepository(db)), db
}

var (
	creator  = domain.Principal{ID: 1, Role: domain.RoleAgent}
	other    = domain.Principal{ID: 2, Role: domain.RoleAgent}
	roster   = domain.Principal{ID: 3, Role: domain.RoleAgent}
	adminP   = domain.Principal{ID: 9, Role: domain.RoleAdmin}
)

func TestCreateGeneratesToken(t *testing.T) {
	svc, _ := setupService(t)

	tk, err := svc.Create(context.Background(), creator, "Printer jams")
	require.NoError(t, err)
	assert.True(t, token.Valid(tk.ID))
	assert.Equal(t, domain.TicketOpen, tk.State)
	assert.Equal(t, creator.ID, tk.CreatorID)
}

func TestGetVisibility(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, creator, "Staging broken")
	require.NoError(t, err)

	// Creator and admin see it, strangers do not.
	_, err = svc.Get(ctx, creator, tk.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, adminP, tk.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, other, tk.ID)
	assert.ErrorIs(t, err, ticket.ErrNotFound)

	// Assignment grants visibility.
	require.NoError(t, svc.Assign(ctx, creator, tk.ID, other.ID))
	_, err = svc.Get(ctx, other, tk.ID)
	assert.NoError(t, err)

	// A roster member of a customer behind a linked project sees it too.
	customer := domain.Customer{Name: "Acme"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&domain.CustomerUser{CustomerID: customer.ID, UserID: roster.ID}).Error)
	project := domain.Project{Name: "Relaunch", CustomerID: &customer.ID}
	require.NoError(t, db.Create(&project).Error)

	_, err = svc.Get(ctx, roster, tk.ID)
	assert.ErrorIs(t, err, ticket.ErrNotFound, "roster without project link must not see it yet")

	require.NoError(t, svc.LinkProject(ctx, creator, tk.ID, project.ID))
	_, err = svc.Get(ctx, roster, tk.ID)
	assert.NoError(t, err)
}

func TestAssignRequiresOwnershipOrAdmin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tk, err := svc.Create(ctx, creator, "Numbers off")
	require.NoError(t, err)

	err = svc.Assign(ctx, other, tk.ID, other.ID)
	assert.ErrorIs(t, err, ticket.ErrForbidden)

	assert.NoError(t, svc.Assign(ctx, adminP, tk.ID, other.ID))
}

func TestGetRejectsMalformedToken(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Get(context.Background(), creator, "../../secrets")
	assert.ErrorIs(t, err, ticket.ErrNotFound)
}

func TestListMine(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, creator, "Mine")
	require.NoError(t, err)
	foreign, err := svc.Create(ctx, other, "Theirs")
	require.NoError(t, err)
	require.NoError(t, svc.Assign(ctx, other, foreign.ID, creator.ID))

	tickets, err := svc.ListMine(ctx, creator)
	require.NoError(t, err)
	require.Len(t, tickets, 2, "created and assigned tickets both count")

	ids := []string{tickets[0].ID, tickets[1].ID}
	assert.Contains(t, ids, created.ID)
	assert.Contains(t, ids, foreign.ID)
}
