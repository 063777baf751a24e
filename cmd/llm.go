package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mcqgen/internal/llm"
	"github.com/abhisek/mcqgen/internal/store"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged question generation and explanation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		sessionID, _ := cmd.Flags().GetString("session")
		since, _ := cmd.Flags().GetDuration("since")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose, SessionID: sessionID}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		if failed {
			// Filter after the query, so fetch everything in range.
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failed {
			events = failedOnly(events, limit)
		}
		writeEventList(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEventDetail(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func failedOnly(events []store.LLMEvent, limit int) []store.LLMEvent {
	out := events[:0]
	for _, e := range events {
		if e.Success {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func writeEventList(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM requests logged.")
		return
	}

	const row = "%-5v  %-19s  %-12s  %-8s  %-28s  %-6v  %-6v  %-7v  %s\n"
	fmt.Fprintf(w, row, "ID", "Time", "Purpose", "Quiz", "Model", "In", "Out", "Ms", "OK")
	rule(w, 110)
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, row,
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.SessionID, 8),
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

func writeEventDetail(w io.Writer, e *store.LLMEvent) {
	field := func(name string, v any) {
		fmt.Fprintf(w, "%-10s %v\n", name+":", v)
	}
	field("ID", e.ID)
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	if e.SessionID != "" {
		field("Quiz", e.SessionID)
	}
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", e.Success)
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}

	section := func(title, body string) {
		fmt.Fprintln(w)
		rule(w, 60)
		fmt.Fprintln(w, title)
		rule(w, 60)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w, body)
	}
	section("PROMPT", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
}

func writeUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by Purpose")
	rule(w, 72)
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	rule(w, 72)
	var calls, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	rule(w, 72)
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	rule(w, 72)
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	rule(w, 72)

	var total float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if p := llm.LookupCost(u.Model); p != nil {
			c := p.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	rule(w, 72)
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (question-gen or explanation)")
	llmListCmd.Flags().StringP("session", "s", "", "Filter by quiz ID")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
