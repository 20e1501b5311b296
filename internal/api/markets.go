package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MaxPageSize is the largest page GET /markets will return.
const MaxPageSize = 1000

// GetMarkets fetches a page of markets.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) (*MarketsResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.SeriesTicker != "" {
		query.Set("series_ticker", opts.SeriesTicker)
	}
	if len(opts.Tickers) > 0 {
		query.Set("tickers", strings.Join(opts.Tickers, ","))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var resp MarketsResponse
	if err := c.get(ctx, "/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	return &resp, nil
}

// FetchOpenMarkets fetches up to limit open markets, following the cursor
// one page at a time. Any page failure aborts the fetch and no partial
// result is returned.
func (c *Client) FetchOpenMarkets(ctx context.Context, limit int, opts GetMarketsOptions) ([]RawMarket, error) {
	if limit <= 0 {
		return nil, nil
	}

	opts.Status = StatusOpen
	opts.Cursor = ""

	markets := make([]RawMarket, 0, min(limit, MaxPageSize))
	for len(markets) < limit {
		opts.Limit = min(limit-len(markets), MaxPageSize)

		resp, err := c.GetMarkets(ctx, opts)
		if err != nil {
			return nil, err
		}

		markets = append(markets, resp.Markets...)

		c.logger.Debug("fetched markets page",
			"page_size", len(resp.Markets),
			"total", len(markets),
			"has_more", resp.Cursor != "",
		)

		if resp.Cursor == "" || len(resp.Markets) == 0 {
			break
		}
		opts.Cursor = resp.Cursor
	}

	if len(markets) > limit {
		markets = markets[:limit]
	}

	return markets, nil
}
