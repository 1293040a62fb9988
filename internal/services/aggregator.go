package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var aggregatorServiceInstance *AggregatorService

// SetAggregatorService sets the global aggregator service instance (call from main.go)
func SetAggregatorService(as *AggregatorService) {
	aggregatorServiceInstance = as
}

// GetAggregatorService returns the global aggregator service instance
func GetAggregatorService() *AggregatorService {
	return aggregatorServiceInstance
}

// AggregatorService delivers rendered responses to the telecom aggregator's
// callback endpoint. Push-only: delivery errors are logged and returned but
// never retried here — the aggregator owns retry and timeout.
type AggregatorService struct {
	client      *http.Client
	callbackURL string
}

// NewAggregatorService creates a new aggregator service instance.
func NewAggregatorService() (*AggregatorService, error) {
	callbackURL := os.Getenv("AGGREGATOR_CALLBACK_URL")
	if callbackURL == "" {
		return nil, fmt.Errorf("missing AGGREGATOR_CALLBACK_URL in environment variables")
	}

	return &AggregatorService{
		client:      &http.Client{Timeout: 10 * time.Second},
		callbackURL: callbackURL,
	}, nil
}

// PushResponse posts a rendered response to the aggregator.
func (a *AggregatorService) PushResponse(resp Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	httpResp, err := a.client.Post(a.callbackURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("❌ Failed to push response for session %s: %v", resp.SessionID, err)
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 300 {
		log.Printf("❌ Aggregator rejected push for session %s: %s", resp.SessionID, httpResp.Status)
		return fmt.Errorf("aggregator returned %s", httpResp.Status)
	}

	log.Printf("✅ Response pushed for session %s", resp.SessionID)
	return nil
}
