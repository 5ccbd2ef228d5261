package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "arledger-cli",
		Short: "ARLedger CLI tool",
		Long:  `A command line interface for inspecting receivables through the ARLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ARLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	statementCmd := &cobra.Command{
		Use:   "statement <holder-id>",
		Short: "Print an account holder's statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printStatement(args[0])
		},
	}

	var asOf string
	var notes bool
	agingCmd := &cobra.Command{
		Use:   "aging <holder-id>",
		Short: "Print an account holder's aging report",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			printAging(args[0], asOf, notes)
		},
	}
	agingCmd.Flags().StringVar(&asOf, "as-of", "", "Reference date (YYYY-MM-DD), defaults to today")
	agingCmd.Flags().BoolVar(&notes, "notes", false, "Age promissory notes instead of invoices")

	rootCmd.AddCommand(statementCmd)
	rootCmd.AddCommand(agingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func printStatement(holderID string) {
	body := get("/api/v1/holders/" + url.PathEscape(holderID) + "/statement")

	var statement struct {
		HolderID     string `json:"holder_id"`
		Transactions []struct {
			Date        string `json:"date"`
			Kind        string `json:"kind"`
			Description string `json:"description"`
			Debit       string `json:"debit"`
			Credit      string `json:"credit"`
			Balance     string `json:"running_balance"`
		} `json:"transactions"`
		TotalDebit     string `json:"total_debit"`
		TotalCredit    string `json:"total_credit"`
		ClosingBalance string `json:"closing_balance"`
	}
	if err := json.Unmarshal(body, &statement); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Statement for %s\n", statement.HolderID)
	fmt.Printf("%-12s %-8s %-40s %12s %12s %12s\n", "DATE", "KIND", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")
	for _, t := range statement.Transactions {
		fmt.Printf("%-12s %-8s %-40s %12s %12s %12s\n",
			t.Date, t.Kind, t.Description, t.Debit, t.Credit, t.Balance)
	}
	fmt.Printf("\nTotal debit:     %s\n", statement.TotalDebit)
	fmt.Printf("Total credit:    %s\n", statement.TotalCredit)
	fmt.Printf("Closing balance: %s\n", statement.ClosingBalance)
}

func printAging(holderID, asOf string, notes bool) {
	path := "/api/v1/holders/" + url.PathEscape(holderID) + "/aging"
	if notes {
		path = "/api/v1/holders/" + url.PathEscape(holderID) + "/notes/aging"
	}
	if asOf != "" {
		path += "?as_of=" + url.QueryEscape(asOf)
	}

	body := get(path)

	var report struct {
		AsOf    string `json:"as_of"`
		Buckets []struct {
			Label  string `json:"label"`
			Amount string `json:"amount"`
		} `json:"buckets"`
		TotalOutstanding string `json:"total_outstanding"`
		Skipped          []struct {
			ID     string `json:"id"`
			Reason string `json:"reason"`
		} `json:"skipped"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Aging report as of %s\n", report.AsOf)
	for _, b := range report.Buckets {
		fmt.Printf("%-8s %12s\n", b.Label, b.Amount)
	}
	fmt.Printf("\nTotal outstanding: %s\n", report.TotalOutstanding)

	if len(report.Skipped) > 0 {
		fmt.Println("\nSkipped documents:")
		for _, s := range report.Skipped {
			fmt.Printf("  %s: %s\n", s.ID, s.Reason)
		}
	}
}
