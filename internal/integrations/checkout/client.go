package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client клиент Stripe Checkout
type Client struct {
	api        *client.API
	currency   string
	successURL string
	cancelURL  string
	log        Logger
}

// NewClient создает клиента с продакшн-бэкендом Stripe
func NewClient(cfg Config, log Logger) *Client {
	return NewClientWithBackends(cfg, nil, log)
}

// NewClientWithBackends создает клиента с заданными бэкендами (nil - бэкенды по умолчанию)
func NewClientWithBackends(cfg Config, backends *stripe.Backends, log Logger) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, backends)

	return &Client{
		api:        api,
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		log:        log,
	}
}

// CreateSession создает сессию оплаты на полную сумму бронирования
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	bookingID := strconv.FormatInt(req.BookingID, 10)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(bookingID),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(c.currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)
	// повторный запрос для того же бронирования и суммы вернет ту же сессию
	params.SetIdempotencyKey(fmt.Sprintf("booking-%s-%d", bookingID, req.Amount))

	c.log.Info("CreateSession: booking=%s, amount=%d %s", bookingID, req.Amount, c.currency)

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.log.Error("CreateSession: stripe error for booking=%s: type=%s code=%s msg=%s",
				bookingID, stripeErr.Type, stripeErr.Code, stripeErr.Msg)
			return nil, fmt.Errorf("%w: %s", ErrProvider, stripeErr.Msg)
		}
		c.log.Error("CreateSession: request failed for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if session.URL == "" {
		return nil, fmt.Errorf("%w: session %s has no url", ErrInvalidResponse, session.ID)
	}

	return &Session{ID: session.ID, URL: session.URL}, nil
}
