package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
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
		Use:   "fincore-cli",
		Short: "Fincore CLI tool",
		Long:  `A command line interface for interacting with the Fincore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Fincore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(consistencyCmd())
	rootCmd.AddCommand(taxesCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Audit stored totals",
		Run: func(cmd *cobra.Command, args []string) {
			result := getJSON("/api/v1/consistency")

			if consistent, ok := result["consistent"].(bool); ok && consistent {
				fmt.Println("Consistency check PASSED")
			} else {
				fmt.Println("Consistency check FAILED")
			}
			printJSON(result)
		},
	}
}

func taxesCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "taxes",
		Short: "List tax definitions",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/taxes"
			if activeOnly {
				path += "?active=true"
			}

			result := getJSON(path)

			taxes, _ := result["taxes"].([]any)
			fmt.Printf("%-28s %-12s %-10s %-12s %-8s\n", "ID", "CODE", "RATE", "CALC", "ACTIVE")
			for _, raw := range taxes {
				tax, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				fmt.Printf("%-28s %-12s %-10v %-12v %-8v\n",
					truncate(fmt.Sprint(tax["id"]), 28),
					truncate(fmt.Sprint(tax["code"]), 12),
					tax["rate"],
					tax["calculation_type"],
					tax["is_active"])
			}
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list active definitions")

	return cmd
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <from> <to>",
		Short: "Derive a fallback rate for a currency pair",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result := getJSON(fmt.Sprintf("/api/v1/rates/fallback?from=%s&to=%s", args[0], args[1]))
			printJSON(result)
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <invoice-id>",
		Short: "Reconcile an invoice against its payments",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result := postJSON("/api/v1/invoices/" + args[0] + "/reconcile")
			printJSON(result)
		},
	}
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func postJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) map[string]any {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
