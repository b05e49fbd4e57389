package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"punchclock/internal/employee/models"
	id "punchclock/pkg/domain"
	"punchclock/pkg/platform/sentinel"
	txcontext "punchclock/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists employee profiles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed employee store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `id, company_id, user_id, full_name, email, is_active, user_active,
	pin_hash, pin_failed_attempts, pin_locked_until, created_at`

func (s *PostgresStore) Create(ctx context.Context, profile *models.Profile) error {
	_, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO employee_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(profile.ID),
		uuid.UUID(profile.CompanyID),
		uuid.UUID(profile.UserID),
		profile.FullName,
		profile.Email,
		profile.IsActive,
		profile.UserActive,
		nullString(profile.PINHash),
		profile.PINFailedAttempts,
		profile.PINLockedUntil,
		createdAt(profile.CreatedAt),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID) (*models.Profile, error) {
	row := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles WHERE id = $1 AND company_id = $2`,
		uuid.UUID(employeeID), uuid.UUID(companyID),
	)
	return scanProfile(row, "find employee by id")
}

func (s *PostgresStore) FindByUser(ctx context.Context, companyID id.CompanyID, userID id.UserID) (*models.Profile, error) {
	row := txcontext.ExecerFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles WHERE user_id = $1 AND company_id = $2`,
		uuid.UUID(userID), uuid.UUID(companyID),
	)
	return scanProfile(row, "find employee by user")
}

// List returns the company's profiles, newest first.
func (s *PostgresStore) List(ctx context.Context, companyID id.CompanyID) ([]models.Profile, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+profileColumns+` FROM employee_profiles WHERE company_id = $1 ORDER BY created_at DESC, id`,
		uuid.UUID(companyID),
	)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows, "scan employee")
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

// Update writes the profile's name and active flag.
func (s *PostgresStore) Update(ctx context.Context, profile *models.Profile) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE employee_profiles
		SET full_name = $3, is_active = $4
		WHERE id = $1 AND company_id = $2
	`, uuid.UUID(profile.ID), uuid.UUID(profile.CompanyID), profile.FullName, profile.IsActive)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListPINRoster(ctx context.Context, companyID id.CompanyID) ([]models.PINCandidate, error) {
	rows, err := txcontext.ExecerFrom(ctx, s.db).QueryContext(ctx, `
		SELECT id, user_id, full_name, email, pin_hash, pin_locked_until
		FROM employee_profiles
		WHERE company_id = $1 AND is_active AND user_active AND pin_hash IS NOT NULL
		ORDER BY full_name, id
	`, uuid.UUID(companyID))
	if err != nil {
		return nil, fmt.Errorf("list pin roster: %w", err)
	}
	defer rows.Close()

	var out []models.PINCandidate
	for rows.Next() {
		var (
			employeeID  uuid.UUID
			userID      uuid.UUID
			c           models.PINCandidate
			lockedUntil sql.NullTime
		)
		if err := rows.Scan(&employeeID, &userID, &c.FullName, &c.Email, &c.PINHash, &lockedUntil); err != nil {
			return nil, fmt.Errorf("scan pin roster: %w", err)
		}
		c.EmployeeID = id.EmployeeID(employeeID)
		c.UserID = id.UserID(userID)
		c.PINLockedUntil = timePtr(lockedUntil)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pin roster: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) SetPINHash(ctx context.Context, companyID id.CompanyID, employeeID id.EmployeeID, hash string) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE employee_profiles
		SET pin_hash = $3, pin_failed_attempts = 0, pin_locked_until = NULL
		WHERE id = $1 AND company_id = $2
	`, uuid.UUID(employeeID), uuid.UUID(companyID), hash)
	if err != nil {
		return fmt.Errorf("set pin hash: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ResetPINLock(ctx context.Context, employeeID id.EmployeeID) error {
	res, err := txcontext.ExecerFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE employee_profiles
		SET pin_failed_attempts = 0, pin_locked_until = NULL
		WHERE id = $1
	`, uuid.UUID(employeeID))
	if err != nil {
		return fmt.Errorf("reset pin lock: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner, op string) (*models.Profile, error) {
	var (
		p                             models.Profile
		employeeID, companyID, userID uuid.UUID
		pinHash                       sql.NullString
		lockedUntil                   sql.NullTime
	)
	err := row.Scan(
		&employeeID,
		&companyID,
		&userID,
		&p.FullName,
		&p.Email,
		&p.IsActive,
		&p.UserActive,
		&pinHash,
		&p.PINFailedAttempts,
		&lockedUntil,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p.ID = id.EmployeeID(employeeID)
	p.CompanyID = id.CompanyID(companyID)
	p.UserID = id.UserID(userID)
	p.PINHash = pinHash.String
	p.PINLockedUntil = timePtr(lockedUntil)
	return &p, nil
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
