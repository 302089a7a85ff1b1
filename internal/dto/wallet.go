package dto

import (
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopUpWalletRequest credits the caller's wallet. Top-up is a bookkeeping
// operation; no payment gateway is involved.
type TopUpWalletRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// DebitWalletRequest debits the caller's wallet.
type DebitWalletRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// WalletResponse is the outward representation of a wallet.
type WalletResponse struct {
	WalletID string          `json:"walletID"`
	UserID   string          `json:"userID"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// ToWalletResponse maps a domain wallet to its response form.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID: w.WalletID,
		UserID:   w.UserID,
		Balance:  w.Balance,
		Currency: w.Currency,
	}
}

// LedgerEntryResponse is the outward representation of a ledger entry.
type LedgerEntryResponse struct {
	EntryID     string           `json:"entryID"`
	WalletID    string           `json:"walletID"`
	Type        domain.EntryType `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description,omitempty"`
	Reference   string           `json:"reference,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponses maps domain ledger entries to their response form.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			EntryID:     e.EntryID,
			WalletID:    e.WalletID,
			Type:        e.Type,
			Amount:      e.Amount,
			Description: e.Description,
			Reference:   e.Reference,
			CreatedAt:   e.CreatedAt,
		}
	}
	return out
}
