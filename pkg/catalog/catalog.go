package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

type PriceType string

const (
	PriceTypeFixed  PriceType = "fixed"
	PriceTypeHourly PriceType = "hourly"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInvalid  = errors.New("service data invalid")
)

// Service is a catalog entry an electrician offers: either a fixed price job
// or an hourly rate one.
type Service struct {
	ID          int
	Name        string
	Description string
	PriceType   PriceType
	FixedPrice  decimal.Decimal
	HourlyRate  decimal.Decimal
}

// UnitPrice returns the price used for proposal line items, depending on the
// price type.
func (s Service) UnitPrice() decimal.Decimal {
	if s.PriceType == PriceTypeHourly {
		return s.HourlyRate
	}
	return s.FixedPrice
}

// Validate checks the invariants required before persisting a service.
func (s Service) Validate() error {
	if s.Name == "" {
		return errors.Join(ErrServiceInvalid, errors.New("name is required"))
	}
	switch s.PriceType {
	case PriceTypeFixed:
		if !s.FixedPrice.IsPositive() {
			return errors.Join(ErrServiceInvalid, errors.New("fixed price must be positive"))
		}
	case PriceTypeHourly:
		if !s.HourlyRate.IsPositive() {
			return errors.Join(ErrServiceInvalid, errors.New("hourly rate must be positive"))
		}
	default:
		return errors.Join(ErrServiceInvalid, errors.New("unknown price type"))
	}
	return nil
}
