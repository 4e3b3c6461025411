package platform_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/platform"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = ports.TrackingUpdate{
	FulfillmentOrderID: "gid://shop/FulfillmentOrder/1",
	NotifyCustomer:     true,
	Company:            "FedEx",
	Number:             "794644790138",
	URL:                "https://www.fedex.com/fedextrack/?trknbr=794644790138",
}

func serve(t *testing.T, status int, body string, seen *map[string]any) *platform.Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Access-Token"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return platform.NewClient(server.URL+"/admin/api/graphql.json", "secret", server.Client())
}

func TestClient_UpdateTracking(t *testing.T) {
	var seen map[string]any
	client := serve(t, http.StatusOK, `{"data":{"fulfillmentTrackingInfoUpdate":{"userErrors":[]}}}`, &seen)

	err := client.UpdateTracking(t.Context(), update)

	require.NoError(t, err)
	assert.Contains(t, seen["query"], "fulfillmentTrackingInfoUpdate")
	assert.Equal(t, map[string]any{
		"fulfillmentOrderId": "gid://shop/FulfillmentOrder/1",
		"notifyCustomer":     true,
		"trackingInfo": map[string]any{
			"company": "FedEx",
			"number":  "794644790138",
			"url":     "https://www.fedex.com/fedextrack/?trknbr=794644790138",
		},
	}, seen["variables"])
}

func TestClient_UpdateTracking_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		expect string
	}{
		{"http status", http.StatusUnauthorized, `{"errors":"bad token"}`, "server returned 401"},
		{"graphql errors", http.StatusOK, `{"errors":[{"message":"Throttled"}]}`, "Throttled"},
		{
			"user errors",
			http.StatusOK,
			`{"data":{"fulfillmentTrackingInfoUpdate":{"userErrors":[{"field":["fulfillmentOrderId"],"message":"not found"}]}}}`,
			"fulfillmentOrderId: not found",
		},
		{"bad json", http.StatusOK, `<html>`, "decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := serve(t, tt.status, tt.body, nil)

			err := client.UpdateTracking(t.Context(), update)

			var syncErr *errs.PlatformSyncError
			require.ErrorAs(t, err, &syncErr)
			assert.Equal(t, update.FulfillmentOrderID, syncErr.FulfillmentOrderID)
			assert.Contains(t, err.Error(), tt.expect)
		})
	}
}
