package models

import (
	"encoding/json"
	"time"
)

// GatewayTimestamp formats t the way the gateway expects, in its fixed
// Nairobi zone. The same value feeds the STK push password digest.
func GatewayTimestamp(t time.Time) string {
	return t.In(nairobiTZ).Format("20060102150405")
}

// TokenResponse is the gateway OAuth response. ExpiresIn arrives as a
// string of seconds.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// STKPushRequest is the outbound STK push payload
type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushResponse is the gateway's synchronous acceptance envelope.
// ResponseCode "0" means the push was accepted for delivery to the
// handset; anything else is a rejection.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKQueryRequest asks the gateway for the current state of a push
type STKQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// STKQueryResponse is the gateway's answer to a status query.
// ResultCode is only meaningful once the push has resolved; while it is
// still processing the gateway answers with an error envelope instead.
type STKQueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// GatewayErrorResponse is the error envelope the gateway returns on
// non-2xx answers
type GatewayErrorResponse struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// WebhookDelivery carries one raw inbound callback together with the
// request metadata recorded for audit
type WebhookDelivery struct {
	Payload   json.RawMessage
	Headers   json.RawMessage
	IPAddress string
}

// TransactionCompletion is the reconciled outcome of a callback or a
// status query, applied to the transaction and its order atomically
type TransactionCompletion struct {
	Status             TransactionStatus
	ResultCode         int
	ResultDescription  string
	MpesaReceiptNumber string
	PhoneNumber        string
	TransactionDate    *time.Time
	CallbackData       json.RawMessage
	ReceivedAt         time.Time
}
