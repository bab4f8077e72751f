package telemetry

import (
	"fmt"
	"os"
)

// HoneycombEndpoint receives OTLP traces.
const HoneycombEndpoint = "https://api.honeycomb.io"

// SetupHoneycombEnv points the OTLP exporter at Honeycomb using
// HONEYCOMB_CAVECRAWL_API_KEY and HONEYCOMB_CAVECRAWL_DATASET.
func SetupHoneycombEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", HoneycombEndpoint)

	// Build the header here; a .env file may hold an unexpanded reference.
	apiKey := os.Getenv("HONEYCOMB_CAVECRAWL_API_KEY")
	dataset := os.Getenv("HONEYCOMB_CAVECRAWL_DATASET")
	if dataset == "" {
		dataset = serviceName
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
