package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyCommission(t *testing.T) {
	m := Money{Amount: 1000, Currency: "INR"}
	assert.Equal(t, int64(20), m.Commission().Amount)
	assert.Equal(t, int64(980), m.NetPayout().Amount)
	assert.Equal(t, "INR", m.NetPayout().Currency)
}

func TestMoneyCommissionRoundsDown(t *testing.T) {
	// 2% of 150 is exactly 3; fractional commissions truncate
	m := Money{Amount: 150, Currency: "INR"}
	assert.Equal(t, int64(3), m.Commission().Amount)
	assert.Equal(t, int64(147), m.NetPayout().Amount)

	small := Money{Amount: 49, Currency: "INR"}
	assert.Equal(t, int64(0), small.Commission().Amount)
	assert.Equal(t, int64(49), small.NetPayout().Amount)
}

func TestMoneyString(t *testing.T) {
	m := Money{Amount: 980, Currency: "INR"}
	assert.Equal(t, "980 INR", m.String())
}
