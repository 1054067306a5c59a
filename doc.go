// Package fundledger tracks the ownership and profitability of investment
// fund positions over time.
//
// A Position owns an append-only ledger of daily entries. Each entry records
// the price change of the fund since the previous entry and the number of
// shares bought or sold on that day. Profit, cost basis and value series are
// derived from the ledger, never stored.
//
// The core functionalities include:
//   - Daily updates: exactly one ledger entry per elapsed calendar day,
//     fetched from a market data Source. Calling an update twice the same day
//     is a no-op.
//   - Periodic refresh: every 10th tracked day the entry also stores the
//     1, 3, 6 and 12 month returns of the fund.
//   - Portfolio aggregation: totals across positions, with a
//     continue-and-collect policy for batch updates.
//   - Data Persistence: a strict, ordered JSON record format and a
//     directory Store.
//
// This package serves as the foundational logic for the `fl` command-line
// tool. Market data comes from the tefas package.
package fundledger
