package models

import (
	"fmt"
	"strconv"
	"time"
)

// nairobiTZ is the fixed zone the gateway uses for confirmation timestamps
var nairobiTZ = time.FixedZone("EAT", 3*60*60)

// STKCallbackEnvelope is the inbound webhook body delivered by the
// gateway after an STK push resolves on the customer's handset
type STKCallbackEnvelope struct {
	Body STKCallbackBody `json:"Body"`
}

// STKCallbackBody wraps the callback payload
type STKCallbackBody struct {
	StkCallback STKCallback `json:"stkCallback"`
}

// STKCallback carries the outcome of one checkout request.
// CallbackMetadata is only present when ResultCode is zero.
type STKCallback struct {
	MerchantRequestID string            `json:"MerchantRequestID"`
	CheckoutRequestID string            `json:"CheckoutRequestID"`
	ResultCode        int               `json:"ResultCode"`
	ResultDesc        string            `json:"ResultDesc"`
	CallbackMetadata  *CallbackMetadata `json:"CallbackMetadata,omitempty"`
}

// CallbackMetadata is the flat name/value list on success callbacks
type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

// CallbackItem is one metadata entry; Value may be a string or a number
type CallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

// PaymentConfirmation is the typed view of a success callback's metadata
type PaymentConfirmation struct {
	ReceiptNumber string
	Amount        float64
	PhoneNumber   string
	TransactionAt *time.Time
}

// Confirmation extracts the success metadata from the callback.
// Missing items are left at their zero value; the reconciler trusts the
// originally requested values in that case.
func (c *STKCallback) Confirmation() (*PaymentConfirmation, error) {
	if c.CallbackMetadata == nil {
		return nil, fmt.Errorf("callback for %s has no metadata", c.CheckoutRequestID)
	}

	conf := &PaymentConfirmation{}
	for _, item := range c.CallbackMetadata.Item {
		switch item.Name {
		case "MpesaReceiptNumber":
			conf.ReceiptNumber = fmt.Sprintf("%v", item.Value)
		case "Amount":
			amt, err := toFloat(item.Value)
			if err != nil {
				return nil, fmt.Errorf("malformed Amount in callback metadata: %w", err)
			}
			conf.Amount = amt
		case "PhoneNumber":
			switch val := item.Value.(type) {
			case string:
				conf.PhoneNumber = val
			case float64:
				conf.PhoneNumber = strconv.FormatFloat(val, 'f', 0, 64)
			}
		case "TransactionDate":
			ts, err := parseGatewayTimestamp(item.Value)
			if err != nil {
				return nil, fmt.Errorf("malformed TransactionDate in callback metadata: %w", err)
			}
			conf.TransactionAt = &ts
		}
	}

	if conf.ReceiptNumber == "" {
		return nil, fmt.Errorf("callback for %s missing MpesaReceiptNumber", c.CheckoutRequestID)
	}

	return conf, nil
}

// parseGatewayTimestamp parses the gateway's YYYYMMDDHHMMSS format in
// its fixed Nairobi zone. JSON numbers arrive as float64.
func parseGatewayTimestamp(v interface{}) (time.Time, error) {
	var raw string
	switch val := v.(type) {
	case string:
		raw = val
	case float64:
		raw = strconv.FormatFloat(val, 'f', 0, 64)
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}

	return time.ParseInLocation("20060102150405", raw, nairobiTZ)
}

func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		return 0, fmt.Errorf("unexpected numeric type %T", v)
	}
}

// CallbackAck is the body returned to the gateway for every delivery
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
