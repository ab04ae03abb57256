package entity

import (
	"math/big"
	"strings"
	"time"
)

var defaultNetworks = map[string]string{
	"USDC":  "base-sepolia",
	"SOL":   "solana-devnet",
	"ETH":   "ethereum-sepolia",
	"MATIC": "polygon-mumbai",
	"BNB":   "bsc-testnet",
}

func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// NetworkFor returns the settlement network used for currency, or "" if none is known.
func NetworkFor(currency string) string {
	return defaultNetworks[NormalizeCurrency(currency)]
}

// Payable is the amount owed in the payment currency.
type Payable struct {
	Currency string `json:"currency"`
	Network  string `json:"network,omitempty"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`

	exact *big.Rat
}

func NewPayable(currency, network string, exact *big.Rat, decimals int) *Payable {
	return &Payable{
		Currency: currency,
		Network:  network,
		Amount:   exact.FloatString(decimals),
		Decimals: decimals,
		exact:    new(big.Rat).Set(exact),
	}
}

// Exact returns the value offers are compared against.
func (p *Payable) Exact() *big.Rat {
	if p.exact != nil {
		return new(big.Rat).Set(p.exact)
	}
	r, ok := new(big.Rat).SetString(p.Amount)
	if !ok {
		return new(big.Rat)
	}
	return r
}

// ExchangeRate is the number of currency units one USD buys.
type ExchangeRate struct {
	Currency  string    `json:"currency"`
	Rate      string    `json:"rate"`
	USDPrice  string    `json:"usd_price"`
	UpdatedAt time.Time `json:"updated_at"`
}
