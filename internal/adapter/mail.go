// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

const sendMailPath = "/v1/messages"

type mailMessage struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Subject   string            `json:"subject"`
	Template  string            `json:"template"`
	Variables map[string]string `json:"variables"`
}

type httpMailAdapter struct {
	client *utils.HTTPClient
	from   string

	logger *logger.Logger
}

// NewMailAdapter returns a [MailAdapter] for the configured mail API.
//
// When cfg.Mail.URL is empty the returned adapter only logs the message,
// which is how development environments run without a provider account.
func NewMailAdapter(cfg config.Adapter, log *logger.Logger) (MailAdapter, error) {
	if cfg.Mail.URL == "" {
		return &logMailAdapter{logger: log}, nil
	}

	baseURL, err := normalizeBaseURL(cfg.Mail.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail api address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetAuthToken(cfg.Mail.APIKey)

	return &httpMailAdapter{client: client, from: cfg.Mail.From, logger: log}, nil
}

func (m *httpMailAdapter) Send(ctx context.Context, email models.Email) error {
	msg := mailMessage{
		From:     m.from,
		To:       email.To,
		Subject:  email.Subject,
		Template: email.Template,
		Variables: map[string]string{
			"firstName": email.FirstName,
			"url":       email.URL,
		},
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(sendMailPath)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Debug().
		Str("func", "httpMailAdapter.Send").
		Str("template", email.Template).
		Msg("mail accepted by provider")
	return nil
}

type logMailAdapter struct {
	logger *logger.Logger
}

func (m *logMailAdapter) Send(ctx context.Context, email models.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.logger.Info().
		Str("func", "logMailAdapter.Send").
		Str("to", email.To).
		Str("subject", email.Subject).
		Str("template", email.Template).
		Str("url", email.URL).
		Msg("mail api not configured, message logged instead of sent")
	return nil
}
