package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/Dan9191/donation-service/internal/config"
	"github.com/Dan9191/donation-service/internal/models"
)

// Client handles integration with the Stripe payment API
type Client struct {
	endpointSecret string
	priceID        string
	serverURL      string
	log            *logrus.Logger
}

// NewClient initializes a new Stripe client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	stripeapi.Key = cfg.StripeSecretKey
	return &Client{
		endpointSecret: cfg.StripeEndpointSecret,
		priceID:        cfg.StripePriceID,
		serverURL:      cfg.ServerURL,
		log:            log,
	}
}

// CreateCheckoutSession starts a hosted checkout session for the given cause
// and returns the hosted payment URL
func (c *Client) CreateCheckoutSession(causeID int64) (string, error) {
	params := &stripeapi.CheckoutSessionParams{
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		Mode:               stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL:         stripeapi.String(c.serverURL + "/donation/payment/success"),
		CancelURL:          stripeapi.String(c.serverURL + "/donation/payment/cancelled"),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(c.priceID),
				Quantity: stripeapi.Int64(1),
			},
		},
	}
	params.AddMetadata("cause_id", strconv.FormatInt(causeID, 10))

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.log.Debugf("Checkout session %s created for cause %d", sess.ID, causeID)
	return sess.URL, nil
}

// chargePayload is the slice of Stripe's charge object settlement needs
type chargePayload struct {
	Amount         int64             `json:"amount"`
	Metadata       map[string]string `json:"metadata"`
	BillingDetails struct {
		Email string `json:"email"`
	} `json:"billing_details"`
}

// ParseEvent verifies the signature header against the raw payload bytes and
// decodes the event into its variant. The signature covers the exact bytes,
// so verification always happens before any JSON parsing.
func (c *Client) ParseEvent(payload []byte, sigHeader string) (*models.PaymentEvent, error) {
	// The SDK pins one Stripe API version and by default refuses events from
	// accounts pinned to any other. The fields settlement reads (amount,
	// metadata, billing_details.email) are stable across versions, so a
	// version mismatch must not reject an otherwise valid event.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if errors.Is(err, webhook.ErrNotSigned) ||
			errors.Is(err, webhook.ErrInvalidHeader) ||
			errors.Is(err, webhook.ErrNoValidSignature) ||
			errors.Is(err, webhook.ErrTooOld) {
			return nil, models.ErrSignatureInvalid
		}
		return nil, models.ErrMalformedPayload
	}

	parsed := &models.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if parsed.Type != "charge.succeeded" {
		return parsed, nil
	}

	var charge chargePayload
	if event.Data == nil {
		return nil, models.ErrMalformedPayload
	}
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return nil, models.ErrMalformedPayload
	}
	parsed.Charge = &models.ChargeSucceeded{
		AmountMinor:  charge.Amount,
		CauseID:      charge.Metadata["cause_id"],
		BillingEmail: charge.BillingDetails.Email,
	}
	return parsed, nil
}
