package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

const requestColumns = `request_id, client_id, assigned_transporter_id, title,
	merchandise_type, merchandise_description, weight, volume,
	pickup_address, pickup_city, pickup_coordinates,
	delivery_address, delivery_city, delivery_coordinates,
	preferred_pickup_date, preferred_delivery_date, status, priority,
	special_instructions, estimated_price, is_recurring, recurring_frequency,
	recipient_name, recipient_phone, recipient_email,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

type PgxRequestRepository struct {
	pool *pgxpool.Pool
}

func newPgxRequestRepository(pool *pgxpool.Pool) *PgxRequestRepository {
	return &PgxRequestRepository{pool: pool}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func scanRequest(row pgx.Row) (*domain.TransportRequest, error) {
	var r domain.TransportRequest
	err := row.Scan(
		&r.RequestID,
		&r.ClientID,
		&r.AssignedTransporterID,
		&r.Title,
		&r.MerchandiseType,
		&r.MerchandiseDescription,
		&r.Weight,
		&r.Volume,
		&r.PickupAddress,
		&r.PickupCity,
		&r.PickupCoordinates,
		&r.DeliveryAddress,
		&r.DeliveryCity,
		&r.DeliveryCoordinates,
		&r.PreferredPickupDate,
		&r.PreferredDeliveryDate,
		&r.Status,
		&r.Priority,
		&r.SpecialInstructions,
		&r.EstimatedPrice,
		&r.IsRecurring,
		&r.RecurringFrequency,
		&r.RecipientName,
		&r.RecipientPhone,
		&r.RecipientEmail,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
		&r.IsActive,
		&r.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string, includeDeleted bool) (*domain.TransportRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM transport_requests WHERE request_id = $1`
	if !includeDeleted {
		query += ` AND is_active = TRUE`
	}
	request, err := scanRequest(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, storeErr(err))
	}
	return request, nil
}

func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.TransportRequest, error) {
	conditions := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeDeleted {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+arg(string(*filter.Status)))
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = "+arg(string(*filter.Priority)))
	}
	if filter.City != "" {
		p := arg("%" + filter.City + "%")
		conditions = append(conditions, "(pickup_city ILIKE "+p+" OR delivery_city ILIKE "+p+")")
	}
	if filter.ClientID != "" {
		conditions = append(conditions, "client_id = "+arg(filter.ClientID))
	}
	if filter.TransporterID != "" {
		conditions = append(conditions, "assigned_transporter_id = "+arg(filter.TransporterID))
	}
	if filter.VisibleToTransporter != "" {
		conditions = append(conditions, "(assigned_transporter_id IS NULL OR assigned_transporter_id = "+arg(filter.VisibleToTransporter)+")")
	}
	if filter.AvailableOnly {
		conditions = append(conditions, "assigned_transporter_id IS NULL")
		conditions = append(conditions, "status IN ("+arg(string(domain.StatusPending))+", "+arg(string(domain.StatusOffersReceived))+")")
	}

	query := `SELECT ` + requestColumns + ` FROM transport_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", storeErr(err))
	}
	defer rows.Close()

	requests := []domain.TransportRequest{}
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", storeErr(err))
		}
		requests = append(requests, *request)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", rows.Err())
	}
	return requests, nil
}

func (r *PgxRequestRepository) ListStatusHistory(ctx context.Context, requestID string) ([]domain.StatusHistoryEntry, error) {
	query := `
		SELECT entry_id, request_id, old_status, new_status, changed_by, comment, created_at
		FROM request_status_history
		WHERE request_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", storeErr(err))
	}
	defer rows.Close()

	entries := []domain.StatusHistoryEntry{}
	for rows.Next() {
		var e domain.StatusHistoryEntry
		if err := rows.Scan(&e.EntryID, &e.RequestID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &e.Comment, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", storeErr(err))
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", rows.Err())
	}
	return entries, nil
}

// SaveRequest inserts the request, takes the escrow debit and writes the
// notification rows in one database transaction. Either everything commits or
// nothing does.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.TransportRequest, escrow *portsrepo.EscrowDebit, notifications []domain.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	insert := `
		INSERT INTO transport_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`
	_, err = tx.Exec(ctx, insert,
		request.RequestID,
		request.ClientID,
		request.AssignedTransporterID,
		request.Title,
		request.MerchandiseType,
		request.MerchandiseDescription,
		request.Weight,
		request.Volume,
		request.PickupAddress,
		request.PickupCity,
		request.PickupCoordinates,
		request.DeliveryAddress,
		request.DeliveryCity,
		request.DeliveryCoordinates,
		request.PreferredPickupDate,
		request.PreferredDeliveryDate,
		request.Status,
		request.Priority,
		request.SpecialInstructions,
		request.EstimatedPrice,
		request.IsRecurring,
		request.RecurringFrequency,
		request.RecipientName,
		request.RecipientPhone,
		request.RecipientEmail,
		request.CreatedAt,
		request.CreatedBy,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
		request.IsActive,
		request.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request %s: %w", request.RequestID, storeErr(err))
	}

	if escrow != nil {
		if _, err := debitWalletTx(ctx, tx, escrow.WalletID, escrow.Entry); err != nil {
			return err
		}
	}

	if len(notifications) > 0 {
		batch := &pgx.Batch{}
		notifQuery := `
			INSERT INTO notifications (` + notificationColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`
		for _, n := range notifications {
			batch.Queue(notifQuery,
				n.NotificationID,
				n.UserID,
				n.Title,
				n.Message,
				n.Kind,
				n.IsRead,
				n.CreatedAt,
				n.CreatedBy,
				n.LastUpdatedAt,
				n.LastUpdatedBy,
				n.IsActive,
				n.DeletedAt,
			)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert notifications for request %s: %w", request.RequestID, storeErr(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit request %s: %w", request.RequestID, storeErr(err))
	}
	return nil
}

// AssignTransporter is a conditional update on "assigned_transporter_id IS
// NULL": when two callers race for the same request exactly one update
// matches, the loser sees apperrors.ErrAlreadyAssigned.
func (r *PgxRequestRepository) AssignTransporter(ctx context.Context, requestID string, transporterID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	update := `
		UPDATE transport_requests
		SET assigned_transporter_id = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE request_id = $5 AND assigned_transporter_id IS NULL AND is_active = TRUE
		RETURNING ` + requestColumns
	request, err := scanRequest(tx.QueryRow(ctx, update,
		transporterID, domain.StatusAssigned, history.CreatedAt, history.ChangedBy, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transport_requests WHERE request_id = $1 AND is_active = TRUE)`, requestID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check request %s: %w", requestID, checkErr)
			}
			if !exists {
				return nil, fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
			}
			return nil, fmt.Errorf("%w: request %s", apperrors.ErrAlreadyAssigned, requestID)
		}
		return nil, fmt.Errorf("failed to assign request %s: %w", requestID, storeErr(err))
	}

	if err := insertHistory(ctx, tx, history); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assignment of request %s: %w", requestID, storeErr(err))
	}
	return request, nil
}

// UpdateStatus moves the request through the status machine. The update is
// conditional on the current status still being history.OldStatus, so a
// concurrent transition cannot be overwritten. A move to CANCELLED clears the
// assigned transporter.
func (r *PgxRequestRepository) UpdateStatus(ctx context.Context, requestID string, history domain.StatusHistoryEntry) (*domain.TransportRequest, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	update := `
		UPDATE transport_requests
		SET status = $1,
			assigned_transporter_id = CASE WHEN $1 = $2 THEN NULL ELSE assigned_transporter_id END,
			last_updated_at = $3, last_updated_by = $4
		WHERE request_id = $5 AND status = $6 AND is_active = TRUE
		RETURNING ` + requestColumns
	request, err := scanRequest(tx.QueryRow(ctx, update,
		history.NewStatus, domain.StatusCancelled, history.CreatedAt, history.ChangedBy, requestID, history.OldStatus))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transport_requests WHERE request_id = $1 AND is_active = TRUE)`, requestID).Scan(&exists); checkErr != nil {
				return nil, fmt.Errorf("failed to check request %s: %w", requestID, checkErr)
			}
			if !exists {
				return nil, fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
			}
			return nil, fmt.Errorf("%w: request %s is no longer %s", apperrors.ErrInvalidTransition, requestID, history.OldStatus)
		}
		return nil, fmt.Errorf("failed to update status of request %s: %w", requestID, storeErr(err))
	}

	if err := insertHistory(ctx, tx, history); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status change of request %s: %w", requestID, storeErr(err))
	}
	return request, nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, history domain.StatusHistoryEntry) error {
	query := `
		INSERT INTO request_status_history (entry_id, request_id, old_status, new_status, changed_by, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.Exec(ctx, query,
		history.EntryID,
		history.RequestID,
		history.OldStatus,
		history.NewStatus,
		history.ChangedBy,
		history.Comment,
		history.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry %s: %w", history.EntryID, storeErr(err))
	}
	return nil
}

func (r *PgxRequestRepository) UpdateRequest(ctx context.Context, request domain.TransportRequest) error {
	query := `
		UPDATE transport_requests
		SET title = $1, merchandise_type = $2, merchandise_description = $3,
			weight = $4, volume = $5,
			pickup_address = $6, pickup_city = $7,
			delivery_address = $8, delivery_city = $9,
			priority = $10, special_instructions = $11, estimated_price = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE request_id = $15 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		request.Title,
		request.MerchandiseType,
		request.MerchandiseDescription,
		request.Weight,
		request.Volume,
		request.PickupAddress,
		request.PickupCity,
		request.DeliveryAddress,
		request.DeliveryCity,
		request.Priority,
		request.SpecialInstructions,
		request.EstimatedPrice,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
		request.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", request.RequestID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrNotFound, request.RequestID)
	}
	return nil
}

func (r *PgxRequestRepository) SoftDeleteRequest(ctx context.Context, requestID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE transport_requests
		SET is_active = FALSE, deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE request_id = $3 AND is_active = TRUE
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, deletedBy, requestID)
	if err != nil {
		return fmt.Errorf("failed to delete request %s: %w", requestID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}

func (r *PgxRequestRepository) RestoreRequest(ctx context.Context, requestID string, restoredBy string, now time.Time) error {
	query := `
		UPDATE transport_requests
		SET is_active = TRUE, deleted_at = NULL, last_updated_at = $1, last_updated_by = $2
		WHERE request_id = $3 AND is_active = FALSE
	`
	cmdTag, err := r.pool.Exec(ctx, query, now, restoredBy, requestID)
	if err != nil {
		return fmt.Errorf("failed to restore request %s: %w", requestID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if checkErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transport_requests WHERE request_id = $1)`, requestID).Scan(&exists); checkErr != nil {
			return fmt.Errorf("failed to check request %s: %w", requestID, checkErr)
		}
		if !exists {
			return fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
		}
		return fmt.Errorf("%w: request %s is not deleted", apperrors.ErrValidation, requestID)
	}
	return nil
}

func (r *PgxRequestRepository) HardDeleteRequest(ctx context.Context, requestID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM transport_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("failed to hard delete request %s: %w", requestID, storeErr(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
	}
	return nil
}
