package services

import (
	"context"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations on wallets.
type WalletReaderSvc interface {
	// GetWallet retrieves the user's wallet, creating it on first access.
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// GetBalance retrieves the cached balance of the user's wallet.
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// History retrieves the user's ledger entries, newest first.
	History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)

	// ListWallets retrieves every wallet. Privileged actors only.
	ListWallets(ctx context.Context, actorID string) ([]domain.Wallet, error)

	// ListAllEntries retrieves ledger entries across all wallets, newest
	// first. Privileged actors only.
	ListAllEntries(ctx context.Context, actorID string, limit int) ([]domain.LedgerEntry, error)
}

// WalletWriterSvc defines balance mutations.
type WalletWriterSvc interface {
	// Credit adds funds to the user's wallet and returns it with the new
	// balance.
	Credit(ctx context.Context, userID string, req dto.TopUpWalletRequest) (*domain.Wallet, error)

	// Debit removes funds from the user's wallet. Fails with
	// apperrors.ErrInsufficientFunds when the balance does not cover the
	// amount.
	Debit(ctx context.Context, userID string, req dto.DebitWalletRequest) (*domain.Wallet, error)
}

// WalletSvcFacade combines all wallet service interfaces.
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
