package vin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"profitlogic/internal/model"
)

// DefaultVPICBaseURL public NHTSA vehicle API
const DefaultVPICBaseURL = "https://vpic.nhtsa.dot.gov/api"

var ErrNotDecoded = errors.New("vin not decoded")

// VPICClient decoder backed by the NHTSA vPIC DecodeVinValues endpoint
type VPICClient struct {
	baseURL string
	client  *http.Client
}

// NewVPICClient creates a vPIC client; zero timeout means 5s
func NewVPICClient(baseURL string, timeout time.Duration) *VPICClient {
	if baseURL == "" {
		baseURL = DefaultVPICBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &VPICClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type vpicResponse struct {
	Count   int `json:"Count"`
	Results []struct {
		Make      string `json:"Make"`
		Model     string `json:"Model"`
		ModelYear string `json:"ModelYear"`
		ErrorCode string `json:"ErrorCode"`
		ErrorText string `json:"ErrorText"`
	} `json:"Results"`
}

// Decode implements Decoder
func (c *VPICClient) Decode(ctx context.Context, raw string) (model.DecodedVIN, error) {
	v, err := Normalize(raw)
	if err != nil {
		return model.DecodedVIN{}, err
	}

	addr := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", c.baseURL, v)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return model.DecodedVIN{}, fmt.Errorf("build vpic request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return model.DecodedVIN{}, fmt.Errorf("to get a response from vpic: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return model.DecodedVIN{}, fmt.Errorf("vpic returned status %d", res.StatusCode)
	}

	var body vpicResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return model.DecodedVIN{}, fmt.Errorf("to decode a json body: %w", err)
	}
	if len(body.Results) == 0 {
		return model.DecodedVIN{}, ErrNotDecoded
	}

	r := body.Results[0]
	if strings.TrimSpace(r.Make) == "" {
		return model.DecodedVIN{}, fmt.Errorf("%w: %s", ErrNotDecoded, r.ErrorText)
	}

	out := model.DecodedVIN{
		VIN:   v,
		Make:  titleCase(r.Make),
		Model: strings.TrimSpace(r.Model),
	}
	if year, err := strconv.Atoi(strings.TrimSpace(r.ModelYear)); err == nil {
		out.ModelYear = year
	}
	return out, nil
}

// titleCase "HYUNDAI MOTOR" -> "Hyundai Motor"
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
