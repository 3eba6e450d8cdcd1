package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

const checkoutSessionsPath = "/v1/checkout/sessions"

type checkoutLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitAmount  int64  `json:"unit_amount"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
}

type checkoutSessionRequest struct {
	Mode              string             `json:"mode"`
	CustomerEmail     string             `json:"customer_email"`
	ClientReferenceID string             `json:"client_reference_id"`
	SuccessURL        string             `json:"success_url"`
	CancelURL         string             `json:"cancel_url"`
	LineItems         []checkoutLineItem `json:"line_items"`
}

type httpPaymentAdapter struct {
	client   *utils.HTTPClient
	currency string

	logger *logger.Logger
}

// NewPaymentAdapter returns a [PaymentAdapter] for the configured hosted
// checkout API. Without a URL every call fails with ErrPaymentNotConfigured.
func NewPaymentAdapter(cfg config.Adapter, log *logger.Logger) (PaymentAdapter, error) {
	if cfg.Payment.URL == "" {
		return disabledPaymentAdapter{}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.Payment.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid payment api address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetAuthToken(cfg.Payment.SecretKey)

	return &httpPaymentAdapter{client: client, currency: cfg.Payment.Currency, logger: log}, nil
}

func (p *httpPaymentAdapter) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
	currency := req.Currency
	if currency == "" {
		currency = p.currency
	}

	body := checkoutSessionRequest{
		Mode:              "payment",
		CustomerEmail:     req.CustomerEmail,
		ClientReferenceID: req.ClientReferenceID,
		SuccessURL:        req.SuccessURL,
		CancelURL:         req.CancelURL,
		LineItems: []checkoutLineItem{{
			Name:        req.TourName,
			Description: req.Description,
			UnitAmount:  req.UnitAmountCents,
			Currency:    currency,
			Quantity:    1,
		}},
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(checkoutSessionsPath)
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("create checkout session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	var session models.CheckoutSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return models.CheckoutSession{}, ErrEmptyCheckoutSession
	}

	p.logger.Debug().
		Str("func", "httpPaymentAdapter.CreateCheckoutSession").
		Int64("tour_id", req.TourID).
		Str("session_id", session.ID).
		Msg("checkout session created")
	return session, nil
}

// GetCheckoutSession looks up a session by id, including its payment status
// and client reference.
func (p *httpPaymentAdapter) GetCheckoutSession(ctx context.Context, sessionID string) (models.CheckoutSession, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("sessionID", sessionID).
		Get(checkoutSessionsPath + "/{sessionID}")
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("get checkout session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("get checkout session: %w", err)
	}

	var session models.CheckoutSession
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.CheckoutSession{}, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.ID == "" {
		return models.CheckoutSession{}, ErrEmptyCheckoutSession
	}

	return session, nil
}

type disabledPaymentAdapter struct{}

func (disabledPaymentAdapter) CreateCheckoutSession(context.Context, models.CheckoutRequest) (models.CheckoutSession, error) {
	return models.CheckoutSession{}, ErrPaymentNotConfigured
}

func (disabledPaymentAdapter) GetCheckoutSession(context.Context, string) (models.CheckoutSession, error) {
	return models.CheckoutSession{}, ErrPaymentNotConfigured
}
