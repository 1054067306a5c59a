package fundledger

import "errors"

var (
	// ErrDataSource is returned when the market data source fails.
	ErrDataSource = errors.New("market data source error")
	// ErrCodeMismatch is returned when a persisted position does not belong to the fund it is loaded for.
	ErrCodeMismatch = errors.New("fund code mismatch")
	// ErrMissingRecord is returned when a persisted record does not exist.
	ErrMissingRecord = errors.New("missing record")
	// ErrInvalidRecord is returned when a persisted record is malformed.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrZeroPrice is returned when a return is computed against a zero price.
	ErrZeroPrice = errors.New("division by zero: last known price is zero")
	// ErrDuplicatePosition is returned when a fund is added twice to a portfolio.
	ErrDuplicatePosition = errors.New("position already exists")
	// ErrUnknownPosition is returned when a fund is not part of a portfolio.
	ErrUnknownPosition = errors.New("unknown position")
	// ErrOversell is returned when selling more shares than held.
	ErrOversell = errors.New("not enough shares")
	// ErrDateOrder is returned when an update date is before the last ledger entry.
	ErrDateOrder = errors.New("date before the last ledger entry")
)
