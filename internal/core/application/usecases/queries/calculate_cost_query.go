// Package queries contains the read side of the freight back office.
// Handlers read straight from the database with SQL and return read models;
// they never go through the unit of work.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCalculateCostQueryIsNotConstructed = errors.New(
	"CalculateCostQuery must be created via NewCalculateCostQuery constructor",
)

// CalculateCostQuery prices a consignment without booking it.
//
// Example:
//
//	query, err := NewCalculateCostQuery(kernel.Air, decimal.RequireFromString("150.5"), decimal.NewFromInt(4500))
//	if err != nil {
//	    return err
//	}
//	breakdown, err := handler.Handle(ctx, query) // EstimatedCost 2482.50
type CalculateCostQuery struct { //nolint:recvcheck //using for validation
	transportMode kernel.TransportMode
	weight        decimal.Decimal
	distanceKm    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCalculateCostQuery validates the inputs. A zero weight is accepted and
// priced at the minimum charge.
func NewCalculateCostQuery(mode kernel.TransportMode, weight, distanceKm decimal.Decimal) (CalculateCostQuery, error) {
	q := CalculateCostQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setTransportMode(mode),
		q.setWeight(weight),
		q.setDistanceKm(distanceKm),
	); err != nil {
		return CalculateCostQuery{}, err
	}

	return q, nil
}

func (q CalculateCostQuery) Validate() error {
	return q.guard.Validate(ErrCalculateCostQueryIsNotConstructed)
}

func (q CalculateCostQuery) TransportMode() kernel.TransportMode { return q.transportMode }
func (q CalculateCostQuery) Weight() decimal.Decimal             { return q.weight }
func (q CalculateCostQuery) DistanceKm() decimal.Decimal         { return q.distanceKm }

func (q *CalculateCostQuery) setTransportMode(mode kernel.TransportMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	q.transportMode = mode
	return nil
}

func (q *CalculateCostQuery) setWeight(weight decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("weight", weight); err != nil {
		return err
	}
	q.weight = weight
	return nil
}

func (q *CalculateCostQuery) setDistanceKm(distanceKm decimal.Decimal) error {
	if err := kernel.ValidateNonNegative("distanceKm", distanceKm); err != nil {
		return err
	}
	q.distanceKm = distanceKm
	return nil
}
