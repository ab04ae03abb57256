package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MicrosPerUSD is the number of Money units in one USD-equivalent.
const MicrosPerUSD = 1_000_000

const moneyDecimals = 6

// Money is a USD-equivalent amount in micro-USD.
type Money int64

var errMoneyFormat = errors.New("invalid money amount")

func USD(whole int64) Money {
	return Money(whole * MicrosPerUSD)
}

func Cents(cents int64) Money {
	return Money(cents * (MicrosPerUSD / 100))
}

// ParseMoney parses a decimal string such as "0.05" or "12" with at most six fractional digits.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMoneyFormat
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, errMoneyFormat
	}
	if len(frac) > moneyDecimals {
		return 0, fmt.Errorf("%w: more than %d decimal places", errMoneyFormat, moneyDecimals)
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, errMoneyFormat
	}

	var units int64
	if whole != "" {
		w, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || w > (1<<63-1)/MicrosPerUSD {
			return 0, fmt.Errorf("%w: out of range", errMoneyFormat)
		}
		units = w * MicrosPerUSD
	}
	if frac != "" {
		f, _ := strconv.ParseInt(frac+strings.Repeat("0", moneyDecimals-len(frac)), 10, 64)
		units += f
	}

	if negative {
		units = -units
	}
	return Money(units), nil
}

func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (m Money) Micros() int64 {
	return int64(m)
}

// String formats m with at least two and at most six fractional digits.
func (m Money) String() string {
	units := int64(m)
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}

	frac := fmt.Sprintf("%06d", units%MicrosPerUSD)
	frac = strings.TrimRight(frac, "0")
	for len(frac) < 2 {
		frac += "0"
	}
	return fmt.Sprintf("%s%d.%s", sign, units/MicrosPerUSD, frac)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON accepts both "1.25" and 1.25.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func MoneyPtr(m Money) *Money {
	return &m
}
