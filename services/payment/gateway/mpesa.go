package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/models"
	nrpkg "github.com/waithaka/dukasoko/internal/pkg/newrelic"
	"github.com/waithaka/dukasoko/internal/utils"
	"github.com/waithaka/dukasoko/services/payment"
)

// STKPush asks the gateway to deliver a payment prompt to the handset
func (g *PaymentGW) STKPush(ctx context.Context, phone string, amount decimal.Decimal, accountRef, description string) (*models.STKPushResponse, error) {
	token, err := g.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := models.GatewayTimestamp(time.Now())
	reqBody := models.STKPushRequest{
		BusinessShortCode: g.cfg.BusinessShortCode,
		Password:          g.password(timestamp),
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount.IntPart(),
		PartyA:            utils.FormatPhoneNumber(phone),
		PartyB:            g.cfg.BusinessShortCode,
		PhoneNumber:       utils.FormatPhoneNumber(phone),
		CallBackURL:       g.cfg.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   description,
	}

	var pushResp models.STKPushResponse
	if err := g.postJSON(ctx, "/mpesa/stkpush/v1/processrequest", token, reqBody, &pushResp); err != nil {
		return nil, err
	}

	if pushResp.ResponseCode != "0" {
		return nil, &payment.GatewayError{
			Code:    pushResp.ResponseCode,
			Message: pushResp.ResponseDescription,
		}
	}

	logger.Info("STK push accepted",
		logger.String("checkout_request_id", pushResp.CheckoutRequestID),
		logger.String("account_reference", accountRef))

	return &pushResp, nil
}

// QueryStatus asks the gateway for the current state of a push
func (g *PaymentGW) QueryStatus(ctx context.Context, checkoutRequestID string) (*models.STKQueryResponse, error) {
	token, err := g.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := models.GatewayTimestamp(time.Now())
	reqBody := models.STKQueryRequest{
		BusinessShortCode: g.cfg.BusinessShortCode,
		Password:          g.password(timestamp),
		Timestamp:         timestamp,
		CheckoutRequestID: checkoutRequestID,
	}

	var queryResp models.STKQueryResponse
	if err := g.postJSON(ctx, "/mpesa/stkpushquery/v1/query", token, reqBody, &queryResp); err != nil {
		return nil, err
	}

	return &queryResp, nil
}

// getAccessToken returns a cached OAuth token, refreshing it when it is
// within five minutes of expiry. Holding the mutex across the refresh
// collapses concurrent callers into a single gateway request.
func (g *PaymentGW) getAccessToken(ctx context.Context) (string, error) {
	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry) {
		return g.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.cfg.ConsumerKey, g.cfg.ConsumerSecret)

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
		return g.httpClient.Do(req)
	})
	if err != nil {
		return "", &payment.TransportError{Op: "token", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &payment.TransportError{Op: "token", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", &payment.AuthError{Message: fmt.Sprintf("status %d from token endpoint", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &payment.GatewayError{Message: fmt.Sprintf("token endpoint returned status %d", resp.StatusCode)}
	}

	var tokenResp models.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &payment.GatewayError{Message: "malformed token response: " + err.Error()}
	}
	if tokenResp.AccessToken == "" {
		return "", &payment.AuthError{Message: "token endpoint returned empty token"}
	}

	g.accessToken = tokenResp.AccessToken
	g.tokenExpiry = time.Now().Add(tokenTTL)

	logger.Debug("Refreshed gateway access token")

	return g.accessToken, nil
}

// postJSON sends an authenticated JSON request and decodes the answer.
// Non-2xx answers are decoded into the gateway's error envelope.
func (g *PaymentGW) postJSON(ctx context.Context, path, token string, reqBody, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
		return g.httpClient.Do(req)
	})
	if err != nil {
		return &payment.TransportError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &payment.TransportError{Op: path, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token may have been revoked ahead of its expiry
		g.invalidateToken()
		return &payment.AuthError{Message: "request rejected with status 401"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var gwErr models.GatewayErrorResponse
		if err := json.Unmarshal(body, &gwErr); err == nil && gwErr.ErrorCode != "" {
			return &payment.GatewayError{Code: gwErr.ErrorCode, Message: gwErr.ErrorMessage}
		}
		return &payment.GatewayError{Message: fmt.Sprintf("status %d from %s", resp.StatusCode, path)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &payment.GatewayError{Message: "malformed gateway response: " + err.Error()}
	}

	return nil
}

func (g *PaymentGW) invalidateToken() {
	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()
	g.accessToken = ""
	g.tokenExpiry = time.Time{}
}

// password builds the STK push password for the given timestamp
func (g *PaymentGW) password(timestamp string) string {
	return base64.StdEncoding.EncodeToString(
		[]byte(g.cfg.BusinessShortCode + g.cfg.Passkey + timestamp))
}
