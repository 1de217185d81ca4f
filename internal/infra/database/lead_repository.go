package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

const leadColumns = `id, name, phone, email, clinic, revenue, challenge, status, notes, created_at`

// postgres SQLSTATE for check_violation
const checkViolation = "23514"

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return scanLeads(rows)
}

// ListByStatuses returns leads whose stored status is one of statuses. With
// includeUnset, rows without a status (read as the default) are included too.
func (r *LeadRepository) ListByStatuses(ctx context.Context, statuses []string, includeUnset bool) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE status = ANY($1) OR ($2 AND status IS NULL)
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(statuses), includeUnset)
	if err != nil {
		return nil, fmt.Errorf("list leads by status: %w", err)
	}
	return scanLeads(rows)
}

// CountByStatus returns how many leads sit in each status. Rows without a
// status are counted under the default one.
func (r *LeadRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT COALESCE(status, $1), COUNT(*) FROM leads GROUP BY 1`, entity.DefaultStatus)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[status] += n
	}
	return counts, rows.Err()
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return insertLead(ctx, r.DB, lead)
}

// CreateBatch inserts all leads in one transaction. Nothing is written when
// any insert fails.
func (r *LeadRepository) CreateBatch(ctx context.Context, leads []entity.Lead) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}

	for i := range leads {
		if err := insertLead(ctx, tx, &leads[i]); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %s: %w", leads[i].Email, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import tx: %w", err)
	}
	return len(leads), nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	query, args, err := buildLeadUpdate(id, patch)
	if err != nil {
		return nil, err
	}

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
			return nil, entity.ErrInvalidStatus
		}
		return nil, err
	}
	return lead, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertLead(ctx context.Context, db execer, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, email, clinic, revenue, challenge, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := db.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Phone,
		lead.Email,
		lead.Clinic,
		lead.Revenue,
		lead.Challenge,
		lead.Status,
		lead.Notes,
		lead.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
			return entity.ErrInvalidStatus
		}
		return err
	}
	return nil
}

// buildLeadUpdate renders the partial UPDATE for the fields present in patch.
// An empty notes string is stored as NULL.
func buildLeadUpdate(id string, patch entity.LeadPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, entity.ErrEmptyPatch
	}

	var sets []string
	var args []any

	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.Notes != nil {
		args = append(args, *patch.Notes)
		sets = append(sets, fmt.Sprintf("notes = NULLIF($%d, '')", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), leadColumns)

	return query, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.Clinic,
		&lead.Revenue,
		&lead.Challenge,
		&lead.Status,
		&lead.Notes,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func scanLeads(rows *sql.Rows) ([]entity.Lead, error) {
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
