package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a donation amount in the unit the donor submitted it in.
type Amount struct {
	value decimal.Decimal
}

// AmountScale and maxAmountDigits match the NUMERIC(12,2) amount column.
const (
	AmountScale     = 2
	maxAmountDigits = 10
)

var amountCeiling = decimal.New(1, maxAmountDigits)

// NewAmount accepts positive values that the store and the processor can
// represent exactly. Trailing zeros past the scale are fine.
func NewAmount(d decimal.Decimal) (Amount, error) {
	if !d.IsPositive() {
		return Amount{}, ErrInvalidAmount
	}
	if !d.Equal(d.Round(AmountScale)) {
		return Amount{}, ErrAmountPrecision
	}
	if d.GreaterThanOrEqual(amountCeiling) {
		return Amount{}, ErrAmountTooLarge
	}
	return Amount{value: d}, nil
}

// ParseAmount parses a decimal string such as "100" or "250.50".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return NewAmount(d)
}

// MustAmount is for fixtures and constants.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) IsPositive() bool { return a.value.IsPositive() }

// Equal compares numerically, so "1" equals "1.00".
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) String() string {
	return a.value.StringFixed(AmountScale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// MergeRaw nests payload under key in the stored raw object, keeping every
// other key that was already there.
func MergeRaw(existing json.RawMessage, key string, payload json.RawMessage) json.RawMessage {
	if key == "" || len(payload) == 0 {
		return existing
	}

	merged := map[string]json.RawMessage{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = map[string]json.RawMessage{"legacy": existing}
		}
	}
	if !json.Valid(payload) {
		quoted, _ := json.Marshal(string(payload))
		payload = quoted
	}
	merged[key] = payload

	out, err := json.Marshal(merged)
	if err != nil {
		return existing
	}
	return out
}

// RawEntry wraps payload as {"key": payload}, the shape merged into storage.
func RawEntry(key string, payload json.RawMessage) json.RawMessage {
	return MergeRaw(nil, key, payload)
}
