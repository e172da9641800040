package model

// Reference records for instrument metadata. Logo is an opaque object key
// in the media store.

type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type CardIssuer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type PaymentProcessor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type Card struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	IsVirtual   bool        `json:"is_virtual"`
	IsTemporary bool        `json:"is_temporary"`
	LastFour    *string     `json:"last_four,omitempty"`
	IssuerID    int64       `json:"issuer_id"`
	Issuer      *CardIssuer `json:"issuer,omitempty"`
}

// PaymentWay is a method of paying, e.g. "contactless card" or
// "bank transfer", optionally tied to a processor.
type PaymentWay struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Image       string            `json:"image,omitempty"`
	ProcessorID *int64            `json:"processor_id,omitempty"`
	Processor   *PaymentProcessor `json:"processor,omitempty"`
}

// Vault is a holding of money in a single currency. Balance is an integer
// in the vault currency's minor units, never in any other currency.
type Vault struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Balance    int64     `json:"balance"`
	Type       VaultType `json:"type"`
	CurrencyID int64     `json:"currency_id"`
	Currency   *Currency `json:"currency,omitempty"`
	BankID     *int64    `json:"bank_id,omitempty"`
	Bank       *Bank     `json:"bank,omitempty"`
	Cards      []*Card   `json:"cards,omitempty"`
}

// FormattedBalance renders the balance with the currency symbol, e.g.
// "$123.45". Requires Currency to be loaded; presentation only, the stored
// integer balance stays untouched.
func (v *Vault) FormattedBalance() string {
	if v.Currency == nil {
		return ""
	}
	return v.Currency.FormatAmount(v.Balance)
}

// FormattedBalanceISO renders the balance with the ISO code, e.g. "123.45 USD".
func (v *Vault) FormattedBalanceISO() string {
	if v.Currency == nil {
		return ""
	}
	return v.Currency.FormatAmountISO(v.Balance)
}

type CardCreateRequest struct {
	Name        string
	IsVirtual   bool
	IsTemporary bool
	LastFour    *string
	IssuerID    int64
}

func (p CardCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if p.IssuerID == 0 {
		return Invalid("issuer_id", "is required")
	}
	if p.LastFour != nil && len(*p.LastFour) != 4 {
		return Invalid("last_four", "must be exactly four digits")
	}
	return nil
}

type PaymentWayCreateRequest struct {
	Name        string
	Image       string
	ProcessorID *int64
}

func (p PaymentWayCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	return nil
}

type VaultCreateRequest struct {
	Name       string
	Balance    int64
	Type       VaultType
	CurrencyID int64
	BankID     *int64
	CardIDs    []int64
}

func (p VaultCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if !p.Type.Valid() {
		return Invalid("type", "is not a known vault type")
	}
	if p.CurrencyID == 0 {
		return Invalid("currency_id", "is required")
	}
	return nil
}
