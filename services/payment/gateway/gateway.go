package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/waithaka/dukasoko/internal/pkg/models"
	natspkg "github.com/waithaka/dukasoko/internal/pkg/nats"
	"github.com/waithaka/dukasoko/services/payment"
)

const (
	sandboxBaseURL = "https://sandbox.safaricom.co.ke"
	liveBaseURL    = "https://api.safaricom.co.ke"

	// The gateway issues tokens valid for an hour; refresh five
	// minutes early to avoid racing the expiry.
	tokenTTL = 55 * time.Minute
)

// PaymentGW talks to the M-Pesa gateway and publishes payment events
type PaymentGW struct {
	cfg        models.MpesaConfig
	baseURL    string
	httpClient *http.Client
	natsClient *natspkg.Client

	// Access token cache. The mutex is held across a refresh so that
	// concurrent pushes trigger a single token request.
	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPaymentGW creates a new payment gateway
func NewPaymentGW(cfg *models.Config, natsClient *natspkg.Client) payment.PaymentGW {
	baseURL := sandboxBaseURL
	if cfg.Mpesa.IsLive {
		baseURL = liveBaseURL
	}

	timeout := time.Duration(cfg.Mpesa.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &PaymentGW{
		cfg:     cfg.Mpesa,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		natsClient: natsClient,
	}
}
