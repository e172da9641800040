package model

import "time"

// Transaction is the ledger record of a value movement between two
// entities. It carries no monetary total of its own; the settled value is
// the sum of its payments.
type Transaction struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Timestamp   time.Time       `json:"timestamp"`
	SenderID    int64           `json:"sender_id"`
	Sender      *Entity         `json:"sender,omitempty"`
	RecipientID int64           `json:"recipient_id"`
	Recipient   *Entity         `json:"recipient,omitempty"`
	Type        TransactionType `json:"type"`
	Receipt     string          `json:"receipt,omitempty"` // object key of the receipt image
	Products    []*Product      `json:"products,omitempty"`
	Payments    []*Payment      `json:"payments,omitempty"`
}

// SettledAmount is the sum of the transaction's payment amounts, in minor
// units of each payment's vault currency.
func (t *Transaction) SettledAmount() int64 {
	var sum int64
	for _, p := range t.Payments {
		sum += p.Amount
	}
	return sum
}

// Payment is one instrument-specific settlement leg of a transaction.
// Amount is in the vault currency's minor units.
type Payment struct {
	ID            int64       `json:"id"`
	Amount        int64       `json:"amount"`
	TransactionID int64       `json:"transaction_id"`
	PaymentWayID  int64       `json:"payment_way_id"`
	PaymentWay    *PaymentWay `json:"payment_way,omitempty"`
	VaultID       int64       `json:"vault_id"`
	Vault         *Vault      `json:"vault,omitempty"`
}

type TransactionCreateRequest struct {
	Name        string
	Timestamp   time.Time
	SenderID    int64
	RecipientID int64
	Type        TransactionType
	Receipt     string
	ProductIDs  []int64
}

func (p TransactionCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if p.SenderID == 0 {
		return Invalid("sender_id", "is required")
	}
	if p.RecipientID == 0 {
		return Invalid("recipient_id", "is required")
	}
	if !p.Type.Valid() {
		return Invalid("type", "is not a known transaction type")
	}
	return nil
}

type PaymentCreateRequest struct {
	Amount        int64
	TransactionID int64
	PaymentWayID  int64
	VaultID       int64
}

func (p PaymentCreateRequest) Validate() error {
	if p.Amount <= 0 {
		return Invalid("amount", "must be positive")
	}
	if p.TransactionID == 0 {
		return Invalid("transaction_id", "is required")
	}
	if p.PaymentWayID == 0 {
		return Invalid("payment_way_id", "is required")
	}
	if p.VaultID == 0 {
		return Invalid("vault_id", "is required")
	}
	return nil
}

// TransactionFilter controls List queries. Listing is ordered by timestamp
// descending then id descending, which keeps pagination deterministic.
type TransactionFilter struct {
	SenderID    *int64
	RecipientID *int64
	Type        *TransactionType
	From        *time.Time
	To          *time.Time
	Page        int // 1-based
	PageSize    int // default and max 100
}
