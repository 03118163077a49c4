package coinmarketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	httpClient "github.com/cyphera/cyphera-relay/internal/client/http"
	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/types/business"
)

const defaultBaseURL = "https://pro-api.coinmarketcap.com"

type cmcQuote struct {
	Price       json.Number `json:"price"`
	LastUpdated string      `json:"last_updated"`
}

type cmcTokenData struct {
	Symbol      string              `json:"symbol"`
	LastUpdated string              `json:"last_updated"`
	Quote       map[string]cmcQuote `json:"quote"`
}

type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type cmcResponse struct {
	Status cmcStatus                 `json:"status"`
	Data   map[string][]cmcTokenData `json:"data"`
}

// Error is a logical error reported inside a 200 response
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("coinmarketcap error %d: %s", e.Code, e.Message)
}

// NativeUSDFeed reads the USD price of the native token from the CoinMarketCap
// latest-quotes endpoint and reports it with 8 decimals
type NativeUSDFeed struct {
	client *httpClient.HTTPClient
	apiKey string
	symbol string
}

// NewNativeUSDFeed creates a feed for symbol (for example "ETH"). baseURL may
// be empty to use the public endpoint.
func NewNativeUSDFeed(apiKey, symbol, baseURL string, options ...httpClient.ClientOption) *NativeUSDFeed {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	options = append([]httpClient.ClientOption{httpClient.WithBaseURL(baseURL)}, options...)
	return &NativeUSDFeed{
		client: httpClient.NewHTTPClient(options...),
		apiKey: apiKey,
		symbol: strings.ToUpper(symbol),
	}
}

// Description implements interfaces.PriceFeed
func (f *NativeUSDFeed) Description() string {
	return "coinmarketcap " + f.symbol + "/USD"
}

// LatestAnswer implements interfaces.PriceFeed
func (f *NativeUSDFeed) LatestAnswer(ctx context.Context) (*business.FeedReading, error) {
	var resp cmcResponse
	err := f.client.GetJSON(ctx, "/v2/cryptocurrency/quotes/latest", &resp,
		httpClient.WithQueryParam("symbol", f.symbol),
		httpClient.WithQueryParam("convert", "USD"),
		httpClient.WithHeader("X-CMC_PRO_API_KEY", f.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s quote: %w", f.symbol, err)
	}
	if resp.Status.ErrorCode != 0 {
		return nil, &Error{Code: resp.Status.ErrorCode, Message: resp.Status.ErrorMessage}
	}

	tokens := resp.Data[f.symbol]
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no quote returned for %s", f.symbol)
	}
	quote, ok := tokens[0].Quote["USD"]
	if !ok {
		return nil, fmt.Errorf("no USD quote returned for %s", f.symbol)
	}

	value, err := helpers.ParseDecimal(quote.Price.String(), constants.NativeUSDDecimals)
	if err != nil {
		return nil, err
	}

	lastUpdated := quote.LastUpdated
	if lastUpdated == "" {
		lastUpdated = tokens[0].LastUpdated
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, lastUpdated)
	if err != nil {
		return nil, fmt.Errorf("invalid last_updated %q: %w", lastUpdated, err)
	}

	return &business.FeedReading{
		Value:     value,
		Decimals:  constants.NativeUSDDecimals,
		UpdatedAt: updatedAt,
	}, nil
}
