package database

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

// openTestDB connects to PLAYBOOK_TEST_DATABASE_URL, drops every table and
// applies the migrations again.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := strings.TrimSpace(os.Getenv("PLAYBOOK_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("PLAYBOOK_TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := NewDBConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `DROP TABLE IF EXISTS leads, admins, schema_migrations`)
	require.NoError(t, err)
	require.NoError(t, ApplyMigrations(ctx, db))
	return db
}

func seedLead(t *testing.T, repo *LeadRepository, name string, status *string, createdAt time.Time) entity.Lead {
	t.Helper()
	lead := entity.Lead{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     "600000000",
		Email:     strings.ToLower(name) + "@example.com",
		Status:    status,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &lead))
	return lead
}

func TestLeadRepositoryListNewestFirst(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	seedLead(t, repo, "Ana", nil, base)
	seedLead(t, repo, "Bea", nil, base.Add(2*time.Hour))
	seedLead(t, repo, "Carla", nil, base.Add(time.Hour))

	leads, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, []string{"Bea", "Carla", "Ana"}, []string{leads[0].Name, leads[1].Name, leads[2].Name})
	assert.Nil(t, leads[0].Status)
	assert.Equal(t, entity.StatusLead, leads[0].EffectiveStatus())
}

func TestLeadRepositoryUpdate(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	ctx := context.Background()
	lead := seedLead(t, repo, "Ana", nil, time.Now().UTC())

	updated, err := repo.Update(ctx, lead.ID, entity.LeadPatch{Status: ptr(entity.StatusBooked), Notes: ptr("llamar")})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBooked, updated.EffectiveStatus())
	assert.Equal(t, "llamar", updated.NotesText())

	cleared, err := repo.Update(ctx, lead.ID, entity.LeadPatch{Notes: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Notes)
	assert.Equal(t, entity.StatusBooked, cleared.EffectiveStatus())
}

func TestLeadRepositoryUpdateErrors(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	ctx := context.Background()
	lead := seedLead(t, repo, "Ana", nil, time.Now().UTC())

	_, err := repo.Update(ctx, uuid.NewString(), entity.LeadPatch{Status: ptr(entity.StatusWarm)})
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	_, err = repo.Update(ctx, lead.ID, entity.LeadPatch{Status: ptr("PERDIDO")})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)

	_, err = repo.Update(ctx, lead.ID, entity.LeadPatch{})
	assert.ErrorIs(t, err, entity.ErrEmptyPatch)
}

func TestLeadRepositoryListByStatuses(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	now := time.Now().UTC()

	seedLead(t, repo, "Ana", nil, now)
	seedLead(t, repo, "Bea", ptr(entity.StatusNotInterested), now)
	seedLead(t, repo, "Carla", ptr(entity.StatusLead), now)

	hidden, err := repo.ListByStatuses(context.Background(), entity.HiddenStatuses(), false)
	require.NoError(t, err)
	require.Len(t, hidden, 1)
	assert.Equal(t, "Bea", hidden[0].Name)

	defaults, err := repo.ListByStatuses(context.Background(), []string{entity.StatusLead}, true)
	require.NoError(t, err)
	assert.Len(t, defaults, 2)
}

func TestLeadRepositoryCountByStatus(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	now := time.Now().UTC()

	seedLead(t, repo, "Ana", nil, now)
	seedLead(t, repo, "Bea", ptr(entity.StatusLead), now)
	seedLead(t, repo, "Carla", ptr(entity.StatusWarm), now)

	counts, err := repo.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int{entity.StatusLead: 2, entity.StatusWarm: 1}, counts)
}

func TestLeadRepositoryCreateBatchIsAtomic(t *testing.T) {
	repo := NewLeadRepository(openTestDB(t))
	now := time.Now().UTC()
	id := uuid.NewString()

	batch := []entity.Lead{
		{ID: id, Name: "Ana", Phone: "1", Email: "ana@example.com", Status: ptr(entity.StatusLead), CreatedAt: now},
		{ID: id, Name: "Bea", Phone: "2", Email: "bea@example.com", Status: ptr(entity.StatusLead), CreatedAt: now},
	}

	n, err := repo.CreateBatch(context.Background(), batch)
	require.Error(t, err)
	assert.Zero(t, n)

	leads, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestAdminRepositoryUpsert(t *testing.T) {
	repo := NewAdminRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, entity.ErrAdminNotFound)

	first := &entity.Admin{ID: uuid.NewString(), Username: "admin", PasswordHash: "hash-1"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.Admin{ID: uuid.NewString(), Username: "admin", PasswordHash: "hash-2"}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	found, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", found.PasswordHash)
}
