// Package api provides the Kalshi REST client used to pull a market listing
// snapshot, and the normalizer that turns raw listing records into
// model.Market values.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Only the public, unauthenticated GET /markets endpoint is used.
package api
