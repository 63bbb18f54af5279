package models

import (
	"fmt"
	"strings"
)

// Currency is a display preference, not an exchange unit. Amounts are never
// converted between currencies; the active currency only picks the symbol
// and decimal count used when formatting.
type Currency struct {
	Code     string
	Symbol   string
	Decimals int
}

var currencies = []Currency{
	{"USD", "$", 2},
	{"EUR", "€", 2},
	{"GBP", "£", 2},
	{"JPY", "¥", 0},
	{"INR", "₹", 2},
	{"CAD", "C$", 2},
	{"AUD", "A$", 2},
	{"CHF", "CHF ", 2},
	{"CNY", "¥", 2},
	{"BRL", "R$", 2},
	{"KRW", "₩", 0},
	{"MXN", "MX$", 2},
	{"SEK", "kr ", 2},
	{"NOK", "kr ", 2},
	{"DKK", "kr ", 2},
	{"PLN", "zł ", 2},
	{"TRY", "₺", 2},
	{"THB", "฿", 2},
	{"IDR", "Rp ", 2},
	{"PHP", "₱", 2},
}

// Currencies returns the fixed ordered list used for cycling.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// DefaultCurrency is USD.
func DefaultCurrency() Currency {
	return currencies[0]
}

// CurrencyFromCode resolves a 3-letter code. Unrecognized codes report ok
// false and the caller falls back to the default.
func CurrencyFromCode(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return DefaultCurrency(), false
}

func (c Currency) index() int {
	for i, o := range currencies {
		if o.Code == c.Code {
			return i
		}
	}
	return 0
}

// Next cycles forward through the fixed list, wrapping at the end.
func (c Currency) Next() Currency {
	return currencies[(c.index()+1)%len(currencies)]
}

// Prev cycles backward through the fixed list, wrapping at the start.
func (c Currency) Prev() Currency {
	return currencies[(c.index()+len(currencies)-1)%len(currencies)]
}

// Format renders an amount with the currency symbol, honoring zero-decimal
// currencies like JPY and KRW.
func (c Currency) Format(m Money) string {
	if c.Decimals == 0 {
		units := (int64(m) + 50) / 100
		return fmt.Sprintf("%s%d", c.Symbol, units)
	}
	return fmt.Sprintf("%s%s", c.Symbol, m)
}

// DisplayName is the cycling label, e.g. "USD ($)".
func (c Currency) DisplayName() string {
	return fmt.Sprintf("%s (%s)", c.Code, strings.TrimSpace(c.Symbol))
}

func (c Currency) String() string {
	return c.Code
}
