package repositories

import (
	"context"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet and ledger data.
type WalletReader interface {
	// FindOrCreateWalletByUserID retrieves the user's wallet, creating an
	// empty one on first access.
	FindOrCreateWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error)

	// ListEntriesByWallet retrieves ledger entries for a wallet, newest
	// first, capped at limit.
	ListEntriesByWallet(ctx context.Context, walletID string, limit int) ([]domain.LedgerEntry, error)

	// ListWallets retrieves every wallet ordered by balance descending.
	// Administrative views only.
	ListWallets(ctx context.Context) ([]domain.Wallet, error)

	// ListAllEntries retrieves ledger entries across all wallets, newest
	// first, capped at limit. Administrative views only.
	ListAllEntries(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}

// WalletWriter defines balance mutations. Both operations append the ledger
// entry and update the cached balance atomically, using a conditional update
// so that concurrent writers on one wallet cannot lose updates.
type WalletWriter interface {
	// Credit increases the wallet balance by entry.Amount and appends the
	// entry. Returns the new balance.
	Credit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error)

	// Debit decreases the wallet balance by entry.Amount and appends the
	// entry. Returns apperrors.ErrInsufficientFunds when the balance is
	// lower than the amount; the check and the update are a single
	// conditional statement. Returns the new balance on success.
	Debit(ctx context.Context, walletID string, entry domain.LedgerEntry) (decimal.Decimal, error)
}

// WalletRepositoryFacade combines all wallet repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
