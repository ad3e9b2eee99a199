package payment

import (
	"context"
	"errors"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"fitboks/internal/logger"
	"fitboks/internal/metrics"
)

var ErrInvalidAmount = errors.New("amount must be at least 100 øre")

// MinAmount is the smallest chargeable amount in øre (1 DKK).
const MinAmount = 100

type Intent struct {
	ClientSecret string `json:"client_secret"`
	IntentID     string `json:"intent_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type Service interface {
	CreateIntent(ctx context.Context, userID int, amount int64, description string) (*Intent, error)
}

// createIntentFunc matches paymentintent.New and is swapped out in tests.
type createIntentFunc func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)

type service struct {
	create createIntentFunc
}

func NewService(apiKey string) Service {
	stripe.Key = apiKey
	return &service{create: paymentintent.New}
}

func (s *service) CreateIntent(ctx context.Context, userID int, amount int64, description string) (*Intent, error) {
	if amount < MinAmount {
		metrics.RecordPaymentIntent("invalid")
		return nil, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyDKK)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if description != "" {
		params.Description = stripe.String(description)
	}
	params.AddMetadata("user_id", strconv.Itoa(userID))
	params.Context = ctx

	intent, err := s.create(params)
	if err != nil {
		metrics.RecordPaymentIntent("error")
		logger.Error("failed to create payment intent", "user_id", userID, "error", err)
		return nil, err
	}

	metrics.RecordPaymentIntent("created")
	logger.Info("payment intent created", "user_id", userID, "intent_id", intent.ID, "amount", amount)

	return &Intent{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}
