package model

// EntityChain groups entities, e.g. the branches of a retail chain.
type EntityChain struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// Entity is any counterparty to a transaction: a person, a merchant, an
// organization. Not necessarily the application's user.
type Entity struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Website   string       `json:"website,omitempty"`
	AddressID int64        `json:"address_id"`
	Address   *Address     `json:"address,omitempty"`
	ChainID   *int64       `json:"chain_id,omitempty"`
	Chain     *EntityChain `json:"chain,omitempty"`
}

type EntityChainCreateRequest struct {
	Name    string
	Website string
}

func (p EntityChainCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	return nil
}

type EntityCreateRequest struct {
	Name      string
	Website   string
	AddressID int64
	ChainID   *int64
}

func (p EntityCreateRequest) Validate() error {
	if p.Name == "" {
		return Invalid("name", "is required")
	}
	if p.AddressID == 0 {
		return Invalid("address_id", "is required")
	}
	return nil
}
