package usecase

import (
	"math/big"

	"paylock/services/ledger/internal/entity"
)

const (
	referenceDecimals = 2
	cryptoDecimals    = 6
)

// PriceResolver converts USD prices into the amount owed in a payment currency.
type PriceResolver struct {
	reference string
}

func NewPriceResolver(referenceCurrency string) *PriceResolver {
	return &PriceResolver{reference: entity.NormalizeCurrency(referenceCurrency)}
}

func (r *PriceResolver) Reference() string {
	return r.reference
}

func (r *PriceResolver) IsReference(currency string) bool {
	currency = entity.NormalizeCurrency(currency)
	return currency == "" || currency == r.reference
}

// Resolve converts priceUSD using rate, the number of currency units one USD buys.
// The reference currency ignores rate and is displayed with two decimals.
func (r *PriceResolver) Resolve(priceUSD entity.Money, currency string, rate *big.Rat) (*entity.Payable, error) {
	currency = entity.NormalizeCurrency(currency)
	if currency == "" {
		currency = r.reference
	}

	usd := big.NewRat(priceUSD.Micros(), entity.MicrosPerUSD)
	if currency == r.reference {
		payable := entity.NewPayable(currency, entity.NetworkFor(currency), usd, referenceDecimals)
		return payable, nil
	}

	if rate == nil || rate.Sign() <= 0 {
		return nil, entity.ErrRateUnavailable
	}

	converted := new(big.Rat).Mul(usd, rate)
	// FloatString rounds half away from zero; amounts are never negative.
	rounded, _ := new(big.Rat).SetString(converted.FloatString(cryptoDecimals))
	return entity.NewPayable(currency, entity.NetworkFor(currency), rounded, cryptoDecimals), nil
}
