// Package carrier talks to the shipping carrier's REST API: OAuth client
// credentials, shipment creation and tracking lookups.
package carrier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	tokenEndpoint = "/oauth/token"
	shipEndpoint  = "/ship/v1/shipments"
	trackEndpoint = "/track/v1/trackingnumbers"

	opCreateShipment = "create shipment"
	opTrack          = "track"

	// Name is reported as the carrier of every label this client buys.
	Name = "FedEx"

	maxErrorBody = 64 << 10
)

// HTTPClient abstracts request execution. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the account the client acts for.
type Config struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	AccountNumber string
}

// Client implements ports.CarrierClient. It fetches a fresh token for every
// call and never retries.
type Client struct {
	cfg    Config
	http   HTTPClient
	logger *slog.Logger
}

var _ ports.CarrierClient = (*Client)(nil)

func NewClient(cfg Config, httpClient HTTPClient, logger *slog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger.With("component", "carrier-client"),
	}
}

// Authenticate exchanges the client credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+tokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errs.NewCarrierAuthErrorWithCause(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.NewCarrierAuthErrorWithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", errs.NewCarrierAuthError(resp.StatusCode, readProblems(resp.Body))
	}

	var token tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", errs.NewCarrierAuthErrorWithCause(fmt.Errorf("decode token response: %w", err))
	}
	if token.AccessToken == "" {
		return "", errs.NewCarrierAuthErrorWithCause(fmt.Errorf("token response has no access_token"))
	}
	return token.AccessToken, nil
}

// CreateShipment buys one label. A call that succeeds but does not carry a
// tracking number and a decodable label is still a *errs.CarrierAPIError,
// with Reason naming the missing piece.
func (c *Client) CreateShipment(ctx context.Context, request shipment.Request) (ports.ShipmentResult, error) {
	token, err := c.Authenticate(ctx)
	if err != nil {
		return ports.ShipmentResult{}, err
	}

	var out shipResponse
	if err = c.post(ctx, token, shipEndpoint, opCreateShipment,
		toShipRequest(c.cfg.AccountNumber, request), &out); err != nil {
		return ports.ShipmentResult{}, err
	}

	return extractShipment(out)
}

func extractShipment(out shipResponse) (ports.ShipmentResult, error) {
	if out.Output == nil || len(out.Output.TransactionShipments) == 0 {
		return ports.ShipmentResult{}, errs.NewCarrierAPIError(opCreateShipment, "response has no transaction shipments")
	}
	tx := out.Output.TransactionShipments[0]
	if len(tx.PieceResponses) == 0 {
		return ports.ShipmentResult{}, errs.NewCarrierAPIError(opCreateShipment, "response has no piece responses")
	}
	piece := tx.PieceResponses[0]
	if len(piece.PackageDocuments) == 0 {
		return ports.ShipmentResult{}, errs.NewCarrierAPIError(opCreateShipment, "response has no package documents")
	}
	encoded := piece.PackageDocuments[0].EncodedLabel
	if encoded == "" {
		return ports.ShipmentResult{}, errs.NewCarrierAPIError(opCreateShipment, "package document has no encoded label")
	}

	number := tx.MasterTrackingNumber
	if number == "" {
		number = piece.TrackingNumber
	}
	if number == "" {
		return ports.ShipmentResult{}, errs.NewCarrierAPIError(opCreateShipment, "response has no tracking number")
	}

	label, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ports.ShipmentResult{}, errs.NewCarrierAPIErrorWithCause(opCreateShipment,
			fmt.Errorf("decode label: %w", err))
	}

	return ports.ShipmentResult{
		Carrier:        Name,
		TrackingNumber: number,
		Label:          label,
	}, nil
}

// FetchTrackingStatus returns nil on any failure and logs it.
func (c *Client) FetchTrackingStatus(ctx context.Context, trackingNumbers []string) map[string]string {
	if len(trackingNumbers) == 0 {
		return map[string]string{}
	}

	token, err := c.Authenticate(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "tracking lookup skipped", "error", err)
		return nil
	}

	body := trackRequest{TrackingInfo: make([]trackingInfoDTO, 0, len(trackingNumbers))}
	for _, n := range trackingNumbers {
		body.TrackingInfo = append(body.TrackingInfo, trackingInfoDTO{
			TrackingNumberInfo: trackingNumberInfoDTO{TrackingNumber: n},
		})
	}

	var out trackResponse
	if err = c.post(ctx, token, trackEndpoint, opTrack, body, &out); err != nil {
		c.logger.WarnContext(ctx, "tracking lookup failed", "count", len(trackingNumbers), "error", err)
		return nil
	}

	statuses := make(map[string]string, len(out.Output.CompleteTrackResults))
	for _, r := range out.Output.CompleteTrackResults {
		if len(r.TrackResults) == 0 || r.TrackResults[0].LatestStatusDetail == nil {
			continue
		}
		statuses[r.TrackingNumber] = r.TrackResults[0].LatestStatusDetail.Description
	}
	return statuses
}

func (c *Client) post(ctx context.Context, token string, endpoint string, op string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errs.NewCarrierAPIErrorWithCause(op, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return errs.NewCarrierAPIErrorWithCause(op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-locale", "en_US")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewCarrierAPIErrorWithCause(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errs.NewCarrierAPIErrorWithStatus(op, resp.StatusCode, readProblems(resp.Body))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewCarrierAPIErrorWithCause(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// readProblems decodes {"errors":[...]}. A body that is not JSON becomes a
// single message-only problem.
func readProblems(body io.Reader) []errs.Problem {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return nil
	}
	var decoded problemsResponse
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return []errs.Problem{{Message: strings.TrimSpace(string(raw))}}
	}
	return decoded.problems()
}
