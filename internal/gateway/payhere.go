package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/domain/payment"
)

// PayHereConfig holds the credentials for the PayHere REST API.
type PayHereConfig struct {
	BaseURL    string
	MerchantID string
	AppSecret  string
}

// PayHereGateway verifies charges and creates refunds against PayHere.
type PayHereGateway struct {
	cfg    PayHereConfig
	client *http.Client
	logger *zap.Logger
}

// NewPayHereGateway creates a PayHere client with a bounded request timeout.
func NewPayHereGateway(cfg PayHereConfig, logger *zap.Logger) *PayHereGateway {
	return &PayHereGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

type payhereChargeRequest struct {
	MerchantID string `json:"merchant_id"`
	Token      string `json:"token"`
	Amount     int64  `json:"amount_cents"`
	Currency   string `json:"currency"`
}

type payhereChargeResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id"`
	Message   string `json:"message"`
}

// VerifyCharge confirms a client-side charge token with PayHere.
func (g *PayHereGateway) VerifyCharge(ctx context.Context, token string, amountCents int64, currency string) (payment.ChargeResult, error) {
	body := payhereChargeRequest{
		MerchantID: g.cfg.MerchantID,
		Token:      token,
		Amount:     amountCents,
		Currency:   currency,
	}

	var resp payhereChargeResponse
	if err := g.post(ctx, "/merchant/v1/payment/charge", body, &resp); err != nil {
		return payment.ChargeResult{}, err
	}

	if resp.Status != "SUCCESS" {
		return payment.ChargeResult{
			Succeeded: false,
			Reason:    resp.Message,
		}, nil
	}
	return payment.ChargeResult{
		Succeeded:  true,
		GatewayRef: resp.PaymentID,
	}, nil
}

type payhereRefundRequest struct {
	MerchantID string `json:"merchant_id"`
	PaymentID  string `json:"payment_id"`
	Amount     int64  `json:"amount_cents"`
	Reason     string `json:"description"`
}

type payhereRefundResponse struct {
	Status   string `json:"status"`
	RefundID string `json:"refund_id"`
	Message  string `json:"message"`
}

// CreateRefund returns part of a cleared charge to the customer.
func (g *PayHereGateway) CreateRefund(ctx context.Context, gatewayRef string, amountCents int64) (string, error) {
	body := payhereRefundRequest{
		MerchantID: g.cfg.MerchantID,
		PaymentID:  gatewayRef,
		Amount:     amountCents,
		Reason:     "booking cancellation refund",
	}

	var resp payhereRefundResponse
	if err := g.post(ctx, "/merchant/v1/payment/refund", body, &resp); err != nil {
		return "", err
	}
	if resp.Status != "SUCCESS" {
		return "", fmt.Errorf("payhere refund rejected: %s", resp.Message)
	}
	return resp.RefundID, nil
}

func (g *PayHereGateway) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode payhere request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.AppSecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("payhere request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("payhere returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode payhere response: %w", err)
	}
	return nil
}
