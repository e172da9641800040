package model

// Enumerated choice fields are persisted as their short string codes and
// decoded back at the data-access boundary, so an unknown code is rejected
// before it ever reaches a row.

type AddressType string

const (
	AddressStreet       AddressType = "st"
	AddressAlley        AddressType = "al"
	AddressNeighborhood AddressType = "nbhd"
)

func (t AddressType) Valid() bool {
	switch t {
	case AddressStreet, AddressAlley, AddressNeighborhood:
		return true
	}
	return false
}

type VaultType string

const (
	VaultCurrent VaultType = "current"
	VaultSavings VaultType = "savings"
	VaultSafe    VaultType = "safe"
)

func (t VaultType) Valid() bool {
	switch t {
	case VaultCurrent, VaultSavings, VaultSafe:
		return true
	}
	return false
}

// AmountType is the unit a product quantity is expressed in.
type AmountType string

const (
	AmountPieces      AmountType = "pcs"
	AmountGrams       AmountType = "g"
	AmountKilograms   AmountType = "kg"
	AmountMilliliters AmountType = "ml"
	AmountLitres      AmountType = "l"
	AmountSeconds     AmountType = "sec"
	AmountMinutes     AmountType = "min"
	AmountHours       AmountType = "hr"
	AmountMonths      AmountType = "mo"
	AmountYears       AmountType = "yr"
	AmountPages       AmountType = "pages"
)

func (t AmountType) Valid() bool {
	switch t {
	case AmountPieces, AmountGrams, AmountKilograms, AmountMilliliters,
		AmountLitres, AmountSeconds, AmountMinutes, AmountHours,
		AmountMonths, AmountYears, AmountPages:
		return true
	}
	return false
}

type ProductCategory string

const (
	CategorySupport     ProductCategory = "support"
	CategoryFood        ProductCategory = "food"
	CategoryEarnings    ProductCategory = "earnings"
	CategoryCulture     ProductCategory = "culture"
	CategoryElectronics ProductCategory = "electronics"
	CategoryHealth      ProductCategory = "health"
	CategoryTransport   ProductCategory = "transport"
	CategoryClothing    ProductCategory = "clothing"
	CategoryOther       ProductCategory = "other"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategorySupport, CategoryFood, CategoryEarnings, CategoryCulture,
		CategoryElectronics, CategoryHealth, CategoryTransport,
		CategoryClothing, CategoryOther:
		return true
	}
	return false
}

type TransactionType string

const (
	TransactionPurchase     TransactionType = "purchase"
	TransactionSubscription TransactionType = "subscription"
	TransactionGift         TransactionType = "gift"
	TransactionSalary       TransactionType = "salary"
	TransactionDonation     TransactionType = "donation"
	TransactionExchange     TransactionType = "exchange"
	TransactionTransfer     TransactionType = "transfer"
	TransactionCashback     TransactionType = "cashback"
	TransactionOther        TransactionType = "other"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionSubscription, TransactionGift,
		TransactionSalary, TransactionDonation, TransactionExchange,
		TransactionTransfer, TransactionCashback, TransactionOther:
		return true
	}
	return false
}
