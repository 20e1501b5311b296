package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/rickgao/kalshi-analyzer/internal/model"
)

// Raw record keys read by NormalizeMarket.
const (
	FieldTicker                 = "ticker"
	FieldTitle                  = "title"
	FieldSubtitle               = "subtitle"
	FieldYesBid                 = "yes_bid"
	FieldYesAsk                 = "yes_ask"
	FieldNoBid                  = "no_bid"
	FieldNoAsk                  = "no_ask"
	FieldVolume                 = "volume"
	FieldStatus                 = "status"
	FieldCategory               = "category"
	FieldExpectedExpirationTime = "expected_expiration_time"
	FieldCloseTime              = "close_time"
)

// RejectCode classifies why a raw record could not become a Market.
type RejectCode string

const (
	RejectMissingTicker RejectCode = "missing_ticker"
	RejectMissingTime   RejectCode = "missing_time"
	RejectBadTime       RejectCode = "bad_time"
	RejectBadPrice      RejectCode = "bad_price"
	RejectBadVolume     RejectCode = "bad_volume"
)

// Rejection describes a raw record that NormalizeMarket skipped.
type Rejection struct {
	Code   RejectCode
	Ticker string // Empty when the ticker itself was unusable
	Field  string
	Err    error
}

func (r *Rejection) Error() string {
	ticker := r.Ticker
	if ticker == "" {
		ticker = "<none>"
	}
	if r.Err != nil {
		return fmt.Sprintf("market %s rejected (%s, field %s): %v", ticker, r.Code, r.Field, r.Err)
	}
	return fmt.Sprintf("market %s rejected (%s, field %s)", ticker, r.Code, r.Field)
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

var (
	errEmptyValue   = errors.New("empty value")
	errNotNumber    = errors.New("not a number")
	errOutOfRange   = errors.New("out of range")
	errNotInteger   = errors.New("not an integer")
	errZeroTime     = errors.New("zero timestamp")
	errNotString    = errors.New("not a string")
	centsPerDollar  = decimal.NewFromInt(100)
	timestampLayout = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}
)

// NormalizeMarket converts one raw GET /markets record into a model.Market.
// The returned error is always a *Rejection.
//
// Resolution time precedence: expected_expiration_time (when the outcome is
// determined) is authoritative. close_time (when trading halts) is used only
// when expected_expiration_time is absent, null or empty. An
// expected_expiration_time that is present but unparseable rejects the record
// with RejectBadTime; it never falls through to close_time.
//
// Prices arrive as integer cents and become fractions of $1. Absent or null
// prices are 0.
func NormalizeMarket(raw RawMarket) (model.Market, error) {
	ticker, _ := raw[FieldTicker].(string)
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return model.Market{}, &Rejection{Code: RejectMissingTicker, Field: FieldTicker}
	}

	reject := func(code RejectCode, field string, err error) (model.Market, error) {
		return model.Market{}, &Rejection{Code: code, Ticker: ticker, Field: field, Err: err}
	}

	resolution, source, field, err := resolutionTime(raw)
	if err != nil {
		if errors.Is(err, errEmptyValue) {
			return reject(RejectMissingTime, field, nil)
		}
		return reject(RejectBadTime, field, err)
	}

	prices := make(map[string]decimal.Decimal, 4)
	for _, key := range []string{FieldYesBid, FieldYesAsk, FieldNoBid, FieldNoAsk} {
		p, err := centsField(raw, key)
		if err != nil {
			return reject(RejectBadPrice, key, err)
		}
		prices[key] = p
	}

	volume, err := volumeField(raw)
	if err != nil {
		return reject(RejectBadVolume, FieldVolume, err)
	}

	return model.Market{
		Ticker:         ticker,
		Title:          stringField(raw, FieldTitle, "Unknown"),
		Subtitle:       stringField(raw, FieldSubtitle, ""),
		YesBid:         prices[FieldYesBid],
		YesAsk:         prices[FieldYesAsk],
		NoBid:          prices[FieldNoBid],
		NoAsk:          prices[FieldNoAsk],
		ResolutionTime: resolution,
		TimeSource:     source,
		Volume:         volume,
		Status:         stringField(raw, FieldStatus, "unknown"),
		Category:       stringField(raw, FieldCategory, ""),
	}, nil
}

// resolutionTime applies the expected_expiration_time -> close_time precedence.
// It returns errEmptyValue when neither field carries a value.
func resolutionTime(raw RawMarket) (time.Time, model.TimeSource, string, error) {
	if s, err := timeString(raw, FieldExpectedExpirationTime); !errors.Is(err, errEmptyValue) {
		if err != nil {
			return time.Time{}, "", FieldExpectedExpirationTime, err
		}
		t, err := ParseTimestamp(s)
		return t, model.TimeSourceExpectedExpiration, FieldExpectedExpirationTime, err
	}

	s, err := timeString(raw, FieldCloseTime)
	if err != nil {
		return time.Time{}, "", FieldCloseTime, err
	}
	t, err := ParseTimestamp(s)
	return t, model.TimeSourceCloseTime, FieldCloseTime, err
}

func timeString(raw RawMarket, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", errEmptyValue
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", errNotString, v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errEmptyValue
	}
	return s, nil
}

// ParseTimestamp parses an ISO 8601 timestamp into UTC. Timestamps without a
// zone are taken as UTC.
func ParseTimestamp(iso string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayout {
		t, err := time.Parse(layout, iso)
		if err == nil {
			if t.IsZero() {
				return time.Time{}, errZeroTime
			}
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// CentsToDollars converts integer cents to a fraction of $1.
// 52 cents -> 0.52
func CentsToDollars(cents decimal.Decimal) decimal.Decimal {
	return cents.Div(centsPerDollar)
}

func centsField(raw RawMarket, key string) (decimal.Decimal, error) {
	c, err := numberField(raw, key)
	if errors.Is(err, errEmptyValue) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if c.IsNegative() || c.GreaterThan(centsPerDollar) {
		return decimal.Zero, fmt.Errorf("%w: %s cents", errOutOfRange, c)
	}
	return CentsToDollars(c), nil
}

func volumeField(raw RawMarket) (int64, error) {
	v, err := numberField(raw, FieldVolume)
	if errors.Is(err, errEmptyValue) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !v.IsInteger() {
		return 0, fmt.Errorf("%w: %s", errNotInteger, v)
	}
	if v.IsNegative() {
		return 0, fmt.Errorf("%w: %s", errOutOfRange, v)
	}
	return v.IntPart(), nil
}

// numberField reads a numeric value in any of the shapes a decoded JSON
// record can carry. Absent, null and blank string values are errEmptyValue.
func numberField(raw RawMarket, key string) (decimal.Decimal, error) {
	switch v := raw[key].(type) {
	case nil:
		return decimal.Zero, errEmptyValue
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", errNotNumber, v)
		}
		return d, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, errEmptyValue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", errNotNumber, v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", errNotNumber, v)
	}
}

// stringField reads a display string in NFC form so composed and decomposed
// accents render and compare the same.
func stringField(raw RawMarket, key, fallback string) string {
	if s, ok := raw[key].(string); ok && s != "" {
		return norm.NFC.String(s)
	}
	return fallback
}

// Batch is the outcome of normalizing a whole listing. Every input record is
// either in Markets or in Rejections.
type Batch struct {
	Markets    []model.Market
	Rejections []*Rejection
	Total      int
}

// Accepted returns the number of records that became Markets.
func (b Batch) Accepted() int {
	return len(b.Markets)
}

// Skipped returns the number of records that were rejected.
func (b Batch) Skipped() int {
	return len(b.Rejections)
}

// RejectionCounts tallies rejections by code.
func (b Batch) RejectionCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range b.Rejections {
		counts[string(r.Code)]++
	}
	return counts
}

// RejectionCodes returns the distinct rejection codes in sorted order.
func (b Batch) RejectionCodes() []string {
	return slices.Sorted(maps.Keys(b.RejectionCounts()))
}

// NormalizeMarkets normalizes each record independently. A bad record never
// aborts the batch.
func NormalizeMarkets(raws []RawMarket) Batch {
	b := Batch{
		Markets: make([]model.Market, 0, len(raws)),
		Total:   len(raws),
	}

	for _, raw := range raws {
		m, err := NormalizeMarket(raw)
		if err != nil {
			var rej *Rejection
			if !errors.As(err, &rej) {
				rej = &Rejection{Err: err}
			}
			b.Rejections = append(b.Rejections, rej)
			continue
		}
		b.Markets = append(b.Markets, m)
	}

	return b
}
