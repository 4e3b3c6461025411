// Package platform pushes tracking numbers to the commerce platform's GraphQL
// admin API.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const updateTrackingMutation = `mutation fulfillmentTrackingInfoUpdate(
  $fulfillmentOrderId: ID!
  $trackingInfo: FulfillmentTrackingInput!
  $notifyCustomer: Boolean
) {
  fulfillmentTrackingInfoUpdate(
    fulfillmentOrderId: $fulfillmentOrderId
    trackingInfoInput: $trackingInfo
    notifyCustomer: $notifyCustomer
  ) {
    userErrors {
      field
      message
    }
  }
}`

// HTTPClient abstracts request execution. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	adminURL    string
	accessToken string
	http        HTTPClient
}

var _ ports.PlatformClient = (*Client)(nil)

func NewClient(adminURL string, accessToken string, httpClient HTTPClient) *Client {
	return &Client{
		adminURL:    adminURL,
		accessToken: accessToken,
		http:        httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data *struct {
		FulfillmentTrackingInfoUpdate *struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"fulfillmentTrackingInfoUpdate"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// UpdateTracking returns *errs.PlatformSyncError on any failure, including
// GraphQL and user errors carried in a 200 response.
func (c *Client) UpdateTracking(ctx context.Context, update ports.TrackingUpdate) error {
	body, err := json.Marshal(graphQLRequest{
		Query: updateTrackingMutation,
		Variables: map[string]any{
			"fulfillmentOrderId": update.FulfillmentOrderID,
			"notifyCustomer":     update.NotifyCustomer,
			"trackingInfo": map[string]string{
				"company": update.Company,
				"number":  update.Number,
				"url":     update.URL,
			},
		},
	})
	if err != nil {
		return errs.NewPlatformSyncError(update.FulfillmentOrderID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.adminURL, bytes.NewReader(body))
	if err != nil {
		return errs.NewPlatformSyncError(update.FulfillmentOrderID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewPlatformSyncError(update.FulfillmentOrderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewPlatformSyncError(update.FulfillmentOrderID,
			fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var out graphQLResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errs.NewPlatformSyncError(update.FulfillmentOrderID, fmt.Errorf("decode response: %w", err))
	}

	var problems []string
	for _, e := range out.Errors {
		problems = append(problems, e.Message)
	}
	if out.Data != nil && out.Data.FulfillmentTrackingInfoUpdate != nil {
		for _, e := range out.Data.FulfillmentTrackingInfoUpdate.UserErrors {
			if len(e.Field) > 0 {
				problems = append(problems, strings.Join(e.Field, ".")+": "+e.Message)
				continue
			}
			problems = append(problems, e.Message)
		}
	}
	if len(problems) > 0 {
		return errs.NewPlatformSyncError(update.FulfillmentOrderID, errors.New(strings.Join(problems, "; ")))
	}
	return nil
}
