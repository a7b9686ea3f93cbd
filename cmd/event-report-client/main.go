package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
)

var defaultEvents = []string{"Aloha", "NonExistentEvent", "TechFest"}

// envelope mirrors the service response for both outcomes.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type result struct {
	StatusCode int
	Body       envelope
}

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:5080", "event report service base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	names := flag.Args()
	if len(names) == 0 {
		names = defaultEvents
	}

	client := &http.Client{Timeout: *timeout}

	failed := false
	for i, name := range names {
		if i > 0 {
			fmt.Println("\n" + strings.Repeat("=", 50) + "\n")
		}

		if !report(context.Background(), os.Stdout, client, *baseURL, name) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// report fetches and prints one event report. It returns false when the
// report could not be retrieved.
func report(ctx context.Context, out io.Writer, client *http.Client, baseURL, name string) bool {
	fmt.Fprintf(out, "Attempting to fetch report for event: '%s' from %s\n", name, baseURL)

	res, err := fetchReport(ctx, client, baseURL, name)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			fmt.Fprintln(out, color.RedString("\nConnection Error: Could not connect to the event report service."))
			fmt.Fprintf(out, "Please ensure the service is running at %s.\n", baseURL)
		} else {
			fmt.Fprintln(out, color.RedString("\nAn unexpected error occurred."))
		}
		fmt.Fprintf(out, "Error details: %v\n", err)
		return false
	}

	if res.StatusCode == http.StatusOK && res.Body.Status == "success" {
		fmt.Fprintln(out, color.GreenString("\nSuccessfully retrieved report for '%s':", name))
		fmt.Fprintln(out, indent(res.Body.Data))
		return true
	}

	fmt.Fprintln(out, color.RedString("\nFailed to retrieve report for '%s' (HTTP %d):", name, res.StatusCode))
	fmt.Fprintln(out, res.Body.Message)
	return false
}

func fetchReport(ctx context.Context, client *http.Client, baseURL, name string) (*result, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/event_report/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var body envelope
	if err = json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("could not decode JSON response (HTTP %d): %w: %s", resp.StatusCode, err, raw)
	}

	return &result{StatusCode: resp.StatusCode, Body: body}, nil
}

func indent(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return string(raw)
	}

	return string(b)
}
