package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pinetwork/pi-go/pkg/piclient"
)

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// newHorizonExecutor builds a request executor for horizon calls, which need
// no Pi API credential.
func newHorizonExecutor(timeoutSeconds int) (*piclient.Executor, error) {
	httpClient := &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}
	executor, err := piclient.NewExecutor(httpClient, piclient.DefaultRetryPolicy(), piclient.DefaultUserAgent)
	if err != nil {
		return nil, fmt.Errorf("building horizon executor: %w", err)
	}
	return executor, nil
}
