package api

// RawMarket is one market record from GET /markets, kept loosely typed.
// Numeric values decode as json.Number.
type RawMarket map[string]any

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []RawMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// Market status filters accepted by GET /markets.
const (
	StatusOpen    = "open"
	StatusClosed  = "closed"
	StatusSettled = "settled"
)

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit        int
	Cursor       string
	EventTicker  string
	SeriesTicker string
	Tickers      []string
	Status       string
}
