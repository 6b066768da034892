package services

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

const (
	donationRefPrefix = "DON"
	orderIDPrefix     = "ORD"
)

// ReferenceGenerator produces the identifiers a new donation is created with.
type ReferenceGenerator interface {
	DonationRef() string
	OrderID() string
}

// TimestampReferences builds references as prefix + unix millis + 6 hex chars.
type TimestampReferences struct {
	Now func() time.Time
}

func NewTimestampReferences() *TimestampReferences {
	return &TimestampReferences{Now: time.Now}
}

func (g *TimestampReferences) DonationRef() string {
	return g.build(donationRefPrefix)
}

func (g *TimestampReferences) OrderID() string {
	return g.build(orderIDPrefix)
}

func (g *TimestampReferences) build(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return prefix + strconv.FormatInt(now().UnixMilli(), 10) + randomHex(3)
}

func randomHex(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
