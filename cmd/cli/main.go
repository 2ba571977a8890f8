package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spinhall/ledgercore/internal/infrastructure/config"
	"github.com/spinhall/ledgercore/internal/infrastructure/postgres"
)

var (
	baseURL   string
	authToken string
	timeout   time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgercore-cli",
		Short: "Ledger Core CLI tool",
		Long:  `A command line interface for operating the Ledger Core API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Ledger Core API")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token for authenticated deployments")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Re-derive balances from the entry log and report drift",
		Long: `Without arguments, sweeps every account. With an account ID,
checks that single account. Stored balances are never modified.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/reconcile"
			if len(args) == 1 {
				path += "/" + args[0]
			}
			runReconcile(path)
		},
	}
	rootCmd.AddCommand(reconcileCmd)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate(postgres.RunMigrations)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrate(postgres.RunMigrationsDown)
		},
	})
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runReconcile(path string) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Reconciliation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok {
		// Single-account check
		if consistent {
			fmt.Printf("Account %s is consistent\n", result["account_id"])
			return
		}
		fmt.Printf("DRIFT DETECTED on account %s\n", result["account_id"])
		fmt.Printf("  stored:   %v\n", result["stored_balance"])
		fmt.Printf("  computed: %v\n", result["computed_balance"])
		fmt.Printf("  drift:    %v\n", result["drift"])
		os.Exit(1)
	}

	// Sweep report
	fmt.Printf("Checked %v accounts, %v consistent\n", result["total_accounts"], result["consistent"])
	if discrepancies, ok := result["discrepancies"].([]any); ok && len(discrepancies) > 0 {
		fmt.Printf("DRIFT DETECTED on %d accounts:\n", len(discrepancies))
		for _, d := range discrepancies {
			if m, ok := d.(map[string]any); ok {
				fmt.Printf("  %s: drift %v\n", m["account_id"], m["drift"])
			}
		}
		os.Exit(1)
	}
}

func runMigrate(fn func(databaseURL, migrationsPath string) error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := fn(cfg.DatabaseURL, "migrations"); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied")
}
