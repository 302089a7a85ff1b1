package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// walletService provides wallet and ledger operations.
type walletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{walletRepo: walletRepo, userRepo: userRepo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindOrCreateWalletByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

func (s *walletService) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

func (s *walletService) History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.walletRepo.ListEntriesByWallet(ctx, wallet.WalletID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for wallet %s: %w", wallet.WalletID, err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

func (s *walletService) ListWallets(ctx context.Context, actorID string) ([]domain.Wallet, error) {
	if err := s.requireFinanceViewer(ctx, actorID); err != nil {
		return nil, err
	}
	wallets, err := s.walletRepo.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	if wallets == nil {
		return []domain.Wallet{}, nil
	}
	return wallets, nil
}

func (s *walletService) ListAllEntries(ctx context.Context, actorID string, limit int) ([]domain.LedgerEntry, error) {
	if err := s.requireFinanceViewer(ctx, actorID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 200
	}
	entries, err := s.walletRepo.ListAllEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

func (s *walletService) Credit(ctx context.Context, userID string, req dto.TopUpWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Rechargement"
	}
	entry := newLedgerEntry(wallet.WalletID, domain.EntryCredit, req.Amount, description, req.Reference, userID)

	newBalance, err := s.walletRepo.Credit(ctx, wallet.WalletID, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet %s: %w", wallet.WalletID, err)
	}
	logger.Info("wallet credited",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", newBalance.String()))

	wallet.Balance = newBalance
	return wallet, nil
}

func (s *walletService) Debit(ctx context.Context, userID string, req dto.DebitWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Paiement"
	}
	entry := newLedgerEntry(wallet.WalletID, domain.EntryDebit, req.Amount, description, req.Reference, userID)

	newBalance, err := s.walletRepo.Debit(ctx, wallet.WalletID, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet %s: %w", wallet.WalletID, err)
	}
	logger.Info("wallet debited",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", newBalance.String()))

	wallet.Balance = newBalance
	return wallet, nil
}

// requireFinanceViewer resolves the actor and authorizes the administrative
// finance views.
func (s *walletService) requireFinanceViewer(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.FindUserByID(ctx, actorID, false)
	if err != nil {
		return fmt.Errorf("failed to resolve actor %s: %w", actorID, err)
	}
	return Authorize(actor.Role, ActionViewFinance, Relation{})
}

// newLedgerEntry builds a ledger entry with fresh identity and audit stamps.
func newLedgerEntry(walletID string, entryType domain.EntryType, amount decimal.Decimal, description, reference, createdBy string) domain.LedgerEntry {
	now := time.Now()
	return domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		WalletID:    walletID,
		Type:        entryType,
		Amount:      amount,
		Description: description,
		Reference:   reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
		SoftDeleteFields: domain.SoftDeleteFields{IsActive: true},
	}
}
