package cmd

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"fiilgen/internal/llm"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history and aggregated token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := sql.Open("sqlite", cfg.Paths.EventLog)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer db.Close()

		if err := printRuns(db); err != nil {
			return err
		}
		return printModelUsage(db)
	},
}

func printRuns(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT started_at, COALESCE(finished_at, ''), mode, level,
		       generated, skipped, failed, prompt_tokens, completion_tokens
		FROM runs ORDER BY started_at DESC LIMIT 20`)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	fmt.Println("Recent Runs")
	fmt.Println(strings.Repeat("─", 96))
	fmt.Printf("%-20s  %-6s  %-5s  %9s  %7s  %6s  %10s  %10s\n",
		"Started", "Mode", "Level", "Generated", "Skipped", "Failed", "In", "Out")
	fmt.Println(strings.Repeat("─", 96))

	count := 0
	for rows.Next() {
		var started, finished, mode, level string
		var generated, skipped, failed, in, out int
		if err := rows.Scan(&started, &finished, &mode, &level,
			&generated, &skipped, &failed, &in, &out); err != nil {
			return fmt.Errorf("scan run: %w", err)
		}
		if finished == "" {
			mode += "*" // still running or interrupted before the stamp
		}
		fmt.Printf("%-20s  %-6s  %-5s  %9d  %7d  %6d  %10d  %10d\n",
			started, mode, level, generated, skipped, failed, in, out)
		count++
	}
	if count == 0 {
		fmt.Println("No runs recorded yet.")
	}
	return rows.Err()
}

func printModelUsage(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT model, COUNT(*), SUM(prompt_tokens), SUM(completion_tokens)
		FROM llm_calls GROUP BY model ORDER BY SUM(prompt_tokens) DESC`)
	if err != nil {
		return fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	type usage struct {
		model   string
		calls   int
		in, out int
	}
	var usages []usage
	for rows.Next() {
		var u usage
		if err := rows.Scan(&u.model, &u.calls, &u.in, &u.out); err != nil {
			return fmt.Errorf("scan usage: %w", err)
		}
		usages = append(usages, u)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(usages) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "In", "Out", "Cost")
	fmt.Println(strings.Repeat("─", 80))

	var totalCost float64
	var unknown []string
	for _, u := range usages {
		cost := llm.LookupCost(u.model)
		if cost == nil {
			unknown = append(unknown, u.model)
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n", truncate(u.model, 32), u.calls, u.in, u.out, "?")
			continue
		}
		c := cost.Cost(u.in, u.out)
		totalCost += c
		fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n", truncate(u.model, 32), u.calls, u.in, u.out, formatCost(c))
	}

	fmt.Println(strings.Repeat("─", 80))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unknown) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
