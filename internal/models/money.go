package models

import "fmt"

// CommissionPercent is the fixed platform commission applied to a gig's gross
// budget. The net payout is always derived at read time from the budget, never
// persisted, so a rate change cannot leave stale amounts behind.
const CommissionPercent = 2

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Commission returns the platform's cut of m.
func (m Money) Commission() Money {
	return Money{Amount: m.Amount * CommissionPercent / 100, Currency: m.Currency}
}

// NetPayout returns what the student receives after commission.
func (m Money) NetPayout() Money {
	return Money{Amount: m.Amount - m.Commission().Amount, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
