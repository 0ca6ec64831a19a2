package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "propledger-cli",
		Short: "PropLedger CLI tool",
		Long:  `A command line interface for interacting with the PropLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PropLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Journal commands
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal operations",
	}

	var submitterID string
	postCmd := &cobra.Command{
		Use:   "post [journal-id]",
		Short: "Post a draft journal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			postJournal(args[0], submitterID)
		},
	}
	postCmd.Flags().StringVar(&submitterID, "submitter", "", "ID of the submitting user")

	journalCmd.AddCommand(postCmd)
	rootCmd.AddCommand(journalCmd)

	// Allocation commands
	allocationCmd := &cobra.Command{
		Use:   "allocation",
		Short: "Allocation operations",
	}

	var (
		contextID   string
		currency    string
		amountMinor int64
	)
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview an allocation for a context",
		Run: func(cmd *cobra.Command, args []string) {
			previewAllocation(contextID, currency, amountMinor)
		},
	}
	previewCmd.Flags().StringVar(&contextID, "context", "", "Budget context ID")
	previewCmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	previewCmd.Flags().Int64Var(&amountMinor, "amount", 0, "Amount in minor units")

	allocationCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(allocationCmd)

	// Health command
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}
	rootCmd.AddCommand(healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type postOutcome struct {
	JournalID       string   `json:"journal_id"`
	Status          string   `json:"status"`
	EntryCount      int      `json:"entry_count"`
	DifferenceMinor *int64   `json:"difference_minor"`
	Currency        string   `json:"currency"`
	Notes           []string `json:"notes"`
}

type allocationLine struct {
	UnitID      string `json:"unit_id"`
	Method      string `json:"method"`
	AmountMinor int64  `json:"amount_minor"`
	Reason      string `json:"reason"`
	Flagged     bool   `json:"flagged"`
	FlagReason  string `json:"flag_reason"`
}

type allocationResult struct {
	RequestedMinor int64            `json:"requested_minor"`
	AllocatedMinor int64            `json:"allocated_minor"`
	Currency       string           `json:"currency"`
	Reconciled     bool             `json:"reconciled"`
	Lines          []allocationLine `json:"lines"`
}

func postJournal(journalID, submitterID string) {
	payload, _ := json.Marshal(map[string]string{"submitter_id": submitterID})

	body, status, err := doPost(baseURL+"/api/v1/journals/"+journalID+"/post", payload)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Post FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var outcome postOutcome
	if err := json.Unmarshal(body, &outcome); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	renderOutcome(os.Stdout, outcome)
}

func previewAllocation(contextID, currency string, amountMinor int64) {
	payload, _ := json.Marshal(map[string]any{
		"context_id":   contextID,
		"currency":     currency,
		"amount_minor": amountMinor,
	})

	body, status, err := doPost(baseURL+"/api/v1/allocations/preview", payload)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Preview FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result allocationResult
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	renderAllocation(os.Stdout, result)
}

func checkHealth() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Health check FAILED (Status: %d)\n", resp.StatusCode)
		os.Exit(1)
	}

	fmt.Println("Health check PASSED")
}

func doPost(url string, payload []byte) ([]byte, int, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

func renderOutcome(w io.Writer, outcome postOutcome) {
	fmt.Fprintf(w, "Journal %s: %s\n", outcome.JournalID, outcome.Status)
	fmt.Fprintf(w, "Entries committed: %d\n", outcome.EntryCount)

	if outcome.DifferenceMinor != nil {
		fmt.Fprintf(w, "Imbalance: %s\n", formatAmount(*outcome.DifferenceMinor, outcome.Currency))
	}

	for _, note := range outcome.Notes {
		fmt.Fprintf(w, "Note: %s\n", note)
	}
}

func renderAllocation(w io.Writer, result allocationResult) {
	fmt.Fprintf(w, "Requested: %s\n", formatAmount(result.RequestedMinor, result.Currency))
	fmt.Fprintf(w, "Allocated: %s\n", formatAmount(result.AllocatedMinor, result.Currency))
	fmt.Fprintf(w, "Reconciled: %v\n", result.Reconciled)

	for _, line := range result.Lines {
		if line.Flagged {
			fmt.Fprintf(w, "  %s  FLAGGED (%s)\n", line.UnitID, line.FlagReason)
			continue
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", line.UnitID, formatAmount(line.AmountMinor, result.Currency), line.Reason)
	}
}

func formatAmount(minor int64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%d", minor)
	}

	return money.New(minor, currency).Display()
}
