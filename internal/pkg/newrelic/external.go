package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// StartExternalSegment opens an external segment for an outgoing HTTP
// request, or returns nil when ctx carries no transaction
func StartExternalSegment(ctx context.Context, request *http.Request) *newrelic.ExternalSegment {
	txn := FromContext(ctx)
	if txn == nil {
		return nil
	}
	return newrelic.StartExternalSegment(txn, request)
}

// InstrumentHTTPRequest runs doFunc inside an external segment and records
// the response status on it. Used by gateway clients for calls to upstream
// payment APIs.
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, doFunc func() (*http.Response, error)) (*http.Response, error) {
	segment := StartExternalSegment(ctx, req)
	if segment != nil {
		defer segment.End()
	}

	resp, err := doFunc()
	if segment != nil && resp != nil {
		segment.Response = resp
	}
	return resp, err
}
