package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

const userColumns = `user_id, first_name, last_name, email, telephone, password_hash, role, address,
	is_verified, is_blocked, is_approved, approved_by, approved_at,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Telephone,
		&user.PasswordHash,
		&user.Role,
		&user.Address,
		&user.IsVerified,
		&user.IsBlocked,
		&user.IsApproved,
		&user.ApprovedBy,
		&user.ApprovedAt,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
		&user.IsActive,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string, includeDeleted bool) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	if !includeDeleted {
		query += ` AND is_active = TRUE`
	}
	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, storeErr(err))
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_active = TRUE`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", storeErr(err))
	}
	return user, nil
}

func (r *PgxUserRepository) ListUsersByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error) {
	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ANY($1) AND is_active = TRUE ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, roleStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to query users by roles: %w", storeErr(err))
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *PgxUserRepository) ListPendingTransporters(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = $1 AND is_approved = FALSE AND is_active = TRUE
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, string(domain.RoleTransporteur))
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transporters: %w", storeErr(err))
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", storeErr(err))
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Telephone,
		user.PasswordHash,
		user.Role,
		user.Address,
		user.IsVerified,
		user.IsBlocked,
		user.IsApproved,
		user.ApprovedBy,
		user.ApprovedAt,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.IsActive,
		user.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user: %w", storeErr(err))
	}
	return nil
}

func (r *PgxUserRepository) MarkTransporterApproved(ctx context.Context, transporterID string, approvedBy string, approvedAt time.Time) error {
	query := `
		UPDATE users
		SET is_approved = TRUE, approved_by = $1, approved_at = $2, last_updated_at = $2, last_updated_by = $1
		WHERE user_id = $3 AND role = $4 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query, approvedBy, approvedAt, transporterID, string(domain.RoleTransporteur))
	if err != nil {
		return fmt.Errorf("failed to approve transporter %s: %w", transporterID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transporter %s", apperrors.ErrNotFound, transporterID)
	}
	return nil
}

func (r *PgxUserRepository) SoftDeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = FALSE, deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, deletedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

func (r *PgxUserRepository) RestoreUser(ctx context.Context, userID string, restoredBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = TRUE, deleted_at = NULL, last_updated_at = $1, last_updated_by = $2
		WHERE user_id = $3 AND is_active = FALSE
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, restoredBy, userID)
	if err != nil {
		return fmt.Errorf("failed to restore user %s: %w", userID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no deleted user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}
