// Package model defines the market data model shared by the analyzer.
//
// Conventions:
//   - Prices: exact decimals in [0, 1] (Kalshi quotes integer cents; 52¢ -> 0.52)
//   - Timestamps: time.Time in UTC
//   - Volume: int64 contracts
//   - IDs: string tickers
//
// A Market is a read-only value. Derived metrics (spread, wide-spread flag,
// time until resolution) are computed by methods on every call and are never
// stored alongside the quoted fields.
package model
