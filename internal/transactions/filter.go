// Package transactions holds the typed trade-history record and the
// date-window filtering used by the history dashboards.
package transactions

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingDate is returned when a record has no creation time.
	ErrMissingDate = errors.New("transaction has no created_at date")

	// ErrInvalidRange is returned when the window start is after its end.
	ErrInvalidRange = errors.New("range start is after range end")
)

// Transaction is one settled trade as the history dashboards see it.
// CreatedAt is mandatory; records are validated at this boundary instead of
// being filtered as untyped maps.
type Transaction struct {
	ID           string    `json:"id"`
	Counterparty string    `json:"counterparty,omitempty"`
	Currency     string    `json:"currency"`
	Amount       float64   `json:"amount"`
	Profit       float64   `json:"profit"`
	CreatedAt    time.Time `json:"created_at"`
}

// FilterByDateRange returns the transactions whose CreatedAt falls inside
// [from, to], inclusive. Any record without a date fails the whole call.
func FilterByDateRange(txs []Transaction, from, to time.Time) ([]Transaction, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	filtered := make([]Transaction, 0, len(txs))
	for i, tx := range txs {
		if tx.CreatedAt.IsZero() {
			return nil, fmt.Errorf("%w: record %d (%s)", ErrMissingDate, i, tx.ID)
		}
		if tx.CreatedAt.Before(from) || tx.CreatedAt.After(to) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered, nil
}

// TotalProfit sums profit across the given transactions.
func TotalProfit(txs []Transaction) float64 {
	var total float64
	for _, tx := range txs {
		total += tx.Profit
	}
	return total
}
