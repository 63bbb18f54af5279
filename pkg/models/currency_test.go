package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrencyFromCode(t *testing.T) {
	c, ok := CurrencyFromCode("EUR")
	assert.True(t, ok)
	assert.Equal(t, "€", c.Symbol)

	c, ok = CurrencyFromCode("XXX")
	assert.False(t, ok)
	assert.Equal(t, "USD", c.Code)
}

func TestCurrencyCycleWrapsBothWays(t *testing.T) {
	all := Currencies()
	assert.Len(t, all, 20)

	c := DefaultCurrency()
	for range all {
		c = c.Next()
	}
	assert.Equal(t, DefaultCurrency().Code, c.Code, "full forward cycle returns to start")

	assert.Equal(t, all[len(all)-1].Code, DefaultCurrency().Prev().Code)
	assert.Equal(t, all[1].Code, DefaultCurrency().Next().Code)
}

func TestCurrencyFormat(t *testing.T) {
	usd, _ := CurrencyFromCode("USD")
	assert.Equal(t, "$12.50", usd.Format(1250))

	jpy, _ := CurrencyFromCode("JPY")
	assert.Equal(t, "¥13", jpy.Format(1250), "zero-decimal currencies round to whole units")

	chf, _ := CurrencyFromCode("CHF")
	assert.Equal(t, "CHF 9.99", chf.Format(999))
}
