package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionInvalid  = errors.New("transaction data invalid")
	ErrUnknownCategory     = errors.New("unknown transaction category")
)

// Transaction is a single dated financial movement. Amount is always stored
// positive; the type carries the sign.
type Transaction struct {
	ID          int
	Type        TransactionType
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
	Description string
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return errors.Join(ErrTransactionInvalid, errors.New("unknown transaction type"))
	}
	if !t.Amount.IsPositive() {
		return errors.Join(ErrTransactionInvalid, errors.New("amount must be positive"))
	}
	if t.Date.IsZero() {
		return errors.Join(ErrTransactionInvalid, errors.New("date is required"))
	}
	if t.Category == "" {
		return errors.Join(ErrTransactionInvalid, errors.New("category is required"))
	}
	return nil
}

// Filter narrows down transaction listings. Zero values mean "no constraint".
type Filter struct {
	From     time.Time
	To       time.Time
	Type     TransactionType
	Category string
}
