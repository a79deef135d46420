package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "musicmentor/internal/errors"
)

// IntentProvider is the card-payment collaborator: it authorizes an amount
// out of band and hands back a client secret the frontend completes the
// charge with. The provider's own protocol is not this service's concern.
type IntentProvider interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (clientSecret string, err error)
}

type localIntentProvider struct{}

// NewLocalIntentProvider returns an IntentProvider that mints opaque client
// secrets locally. It stands in for the hosted provider in development and
// tests.
func NewLocalIntentProvider() IntentProvider {
	return &localIntentProvider{}
}

func (p *localIntentProvider) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", apperrors.ErrInvalidAmount
	}
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	nonce := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("pi_%s_secret_%s", id, nonce), nil
}
