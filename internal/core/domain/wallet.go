package domain

import "github.com/shopspring/decimal"

// DefaultCurrency is the currency wallets are created with.
const DefaultCurrency = "XOF"

// Wallet holds a user's balance. One wallet per user, created lazily on
// first access. The balance is a materialized cache of the signed sum of the
// wallet's ledger entries and is only ever updated in the same transaction
// that appends an entry.
type Wallet struct {
	WalletID string          `json:"walletID"`
	UserID   string          `json:"userID"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	AuditFields
	SoftDeleteFields
}

// EntryType indicates whether a ledger entry increases or decreases a balance.
type EntryType string

const (
	EntryCredit EntryType = "CREDIT"
	EntryDebit  EntryType = "DEBIT"
)

// LedgerEntry is one immutable movement on a wallet. Amount is always
// positive; the type carries the sign.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	WalletID    string          `json:"walletID"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	AuditFields
	SoftDeleteFields
}

// SignedAmount returns the entry's contribution to the wallet balance.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Type == EntryDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}
