package calculation

import "errors"

var (
	// ErrInvalidHorizon is returned when retirement precedes the current age or
	// life expectancy precedes retirement.
	ErrInvalidHorizon = errors.New("invalid projection horizon")

	// ErrNonPositiveYears is returned by the annuity formula for a zero or negative payout period.
	ErrNonPositiveYears = errors.New("withdrawal period must be at least one year")

	// ErrInvalidRate is returned for a return rate of -100% or below.
	ErrInvalidRate = errors.New("rate of return must be greater than -100%")

	// ErrTargetUnreachable is returned when no contribution level reaches the target balance.
	ErrTargetUnreachable = errors.New("target balance is unreachable")

	// ErrNoTaxBracket is returned when no band in the table contains the income.
	ErrNoTaxBracket = errors.New("no tax bracket matches income")

	// ErrInvalidTaxTable is returned for empty, overlapping or unordered tables.
	ErrInvalidTaxTable = errors.New("invalid tax bracket table")
)
