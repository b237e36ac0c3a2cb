package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// PayoffProjection estimates the remaining life and cost of a debt paid
// down at a fixed monthly amount.
type PayoffProjection struct {
	MonthsToPayoff int
	TotalPaid      decimal.Decimal
	TotalInterest  decimal.Decimal
}

var twelveHundred = decimal.NewFromInt(1200)

// Project computes a payoff projection for a balance at an annual interest
// rate (in percent) and a fixed monthly payment.
//
// The month count is the closed-form solution of the amortization recurrence
//
//	balance' = balance*(1+monthlyRate) - payment
//
// solved for the first month the balance reaches zero:
//
//	rawMonths = ln(1 + balance*monthlyRate/payment) / ln(1 + monthlyRate)
//
// MonthsToPayoff is that value rounded up to whole months, while TotalPaid
// is payment times the unrounded month count. The pair is therefore slightly
// inconsistent with each other (a "10 month" schedule can show less than ten
// full payments of cost); this mirrors how the projection has always been
// presented and is kept as is.
//
// The logarithm is evaluated in float64, so the projection is an estimate
// accurate to double precision. It never feeds back into the ledger.
//
// Returns ErrPaymentTooLow when the payment does not cover the first
// period's interest: the balance would never decrease.
func Project(balance, annualRatePercent, monthlyPayment decimal.Decimal) (PayoffProjection, error) {
	if balance.Sign() <= 0 || annualRatePercent.Sign() < 0 || monthlyPayment.Sign() <= 0 {
		return PayoffProjection{}, ErrInvalidAmount
	}

	monthlyRate := annualRatePercent.Div(twelveHundred)

	if monthlyRate.IsZero() {
		// No interest: plain division, all decimal.
		rawMonths := balance.Div(monthlyPayment)
		return PayoffProjection{
			MonthsToPayoff: int(rawMonths.Ceil().IntPart()),
			TotalPaid:      balance,
			TotalInterest:  decimal.Zero,
		}, nil
	}

	if monthlyPayment.Cmp(balance.Mul(monthlyRate)) <= 0 {
		return PayoffProjection{}, ErrPaymentTooLow
	}

	b := balance.InexactFloat64()
	r := monthlyRate.InexactFloat64()
	p := monthlyPayment.InexactFloat64()
	rawMonths := math.Log(1+b*r/p) / math.Log(1+r)

	totalPaid := monthlyPayment.Mul(decimal.NewFromFloat(rawMonths)).Round(2)
	return PayoffProjection{
		MonthsToPayoff: int(math.Ceil(rawMonths)),
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid.Sub(balance),
	}, nil
}
