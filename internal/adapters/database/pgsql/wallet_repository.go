package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
)

const walletColumns = `wallet_id, user_id, balance, currency,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

const entryColumns = `entry_id, wallet_id, entry_type, amount, description, reference,
	created_at, created_by, last_updated_at, last_updated_by, is_active, deleted_at`

type PgxWalletRepository struct {
	pool *pgxpool.Pool
}

func newPgxWalletRepository(pool *pgxpool.Pool) *PgxWalletRepository {
	return &PgxWalletRepository{pool: pool}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := row.Scan(
		&wallet.WalletID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.Currency,
		&wallet.CreatedAt,
		&wallet.CreatedBy,
		&wallet.LastUpdatedAt,
		&wallet.LastUpdatedBy,
		&wallet.IsActive,
		&wallet.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *PgxWalletRepository) FindOrCreateWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	// The insert is a no-op when the wallet already exists, so first access
	// and every later one go through the same two statements.
	now := time.Now()
	insert := `
		INSERT INTO wallets (wallet_id, user_id, balance, currency, created_at, created_by, last_updated_at, last_updated_by, is_active)
		VALUES ($1, $2, 0, $3, $4, $2, $4, $2, TRUE)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, insert, uuid.NewString(), userID, domain.DefaultCurrency, now); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to create wallet for user %s: %w", userID, storeErr(err))
	}

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	wallet, err := scanWallet(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet for user %s: %w", userID, storeErr(err))
	}
	return wallet, nil
}

func (r *PgxWalletRepository) ListEntriesByWallet(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + entryColumns + ` FROM wallet_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, walletID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", storeErr(err))
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PgxWalletRepository) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY balance DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", storeErr(err))
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", storeErr(err))
		}
		wallets = append(wallets, *wallet)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", rows.Err())
	}
	return wallets, nil
}

func (r *PgxWalletRepository) ListAllEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	query := `SELECT ` + entryColumns + ` FROM wallet_entries
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", storeErr(err))
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.EntryID,
			&e.WalletID,
			&e.Type,
			&e.Amount,
			&e.Description,
			&e.Reference,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
			&e.IsActive,
			&e.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", storeErr(err))
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}

func (r *PgxWalletRepository) Credit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var newBalance decimal.Decimal
	update := `
		UPDATE wallets
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE wallet_id = $4
		RETURNING balance
	`
	err = tx.QueryRow(ctx, update, entry.Amount, entry.CreatedAt, entry.CreatedBy, walletID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
		}
		return decimal.Zero, fmt.Errorf("failed to credit wallet %s: %w", walletID, storeErr(err))
	}

	if err := insertEntry(ctx, tx, entry); err != nil {
		return decimal.Zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit credit on wallet %s: %w", walletID, storeErr(err))
	}
	return newBalance, nil
}

func (r *PgxWalletRepository) Debit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin transaction: %w", storeErr(err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	newBalance, err := debitWalletTx(ctx, tx, walletID, entry)
	if err != nil {
		return decimal.Zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit debit on wallet %s: %w", walletID, storeErr(err))
	}
	return newBalance, nil
}

// debitWalletTx runs the balance check and update as a single conditional
// statement inside the given transaction, then appends the ledger entry. Two
// concurrent debits on one wallet cannot both pass the balance guard.
func debitWalletTx(ctx context.Context, tx pgx.Tx, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error) {
	var newBalance decimal.Decimal
	update := `
		UPDATE wallets
		SET balance = balance - $1, last_updated_at = $2, last_updated_by = $3
		WHERE wallet_id = $4 AND balance >= $1
		RETURNING balance
	`
	err := tx.QueryRow(ctx, update, entry.Amount, entry.CreatedAt, entry.CreatedBy, walletID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE wallet_id = $1)`, walletID).Scan(&exists); checkErr != nil {
				return decimal.Zero, fmt.Errorf("failed to check wallet %s: %w", walletID, checkErr)
			}
			if !exists {
				return decimal.Zero, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
			}
			return decimal.Zero, fmt.Errorf("%w: wallet %s", apperrors.ErrInsufficientFunds, walletID)
		}
		return decimal.Zero, fmt.Errorf("failed to debit wallet %s: %w", walletID, storeErr(err))
	}

	if err := insertEntry(ctx, tx, entry); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func insertEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO wallet_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.WalletID,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.Reference,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		entry.IsActive,
		entry.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, storeErr(err))
	}
	return nil
}
