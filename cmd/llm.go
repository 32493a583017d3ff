package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqtrack/internal/llm"
	"github.com/abhisek/pyqtrack/internal/store"
	"github.com/abhisek/pyqtrack/internal/ui/text"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the extraction request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent extraction requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}
			r := newReport("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, ev := range events {
				r.row(ev.ID, ev.Timestamp.Local().Format(timeLayout), ev.Purpose,
					text.Truncate(ev.Model, 28), ev.InputTokens, ev.OutputTokens, ev.LatencyMs, mark(ev.Success))
			}
			r.write(out, "")
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ev, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if ev == nil {
				return fmt.Errorf("event %d not found", id)
			}
			printEvent(out, ev)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ctx := cmd.Context()
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			usageReport(byPurpose).write(out, "Usage by purpose")
			fmt.Fprintln(out)
			cost, unpriced := costReport(byModel)
			cost.write(out, "Estimated cost (USD)")
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (extract, preview)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

// withEvents opens the store for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo, io.Writer) error) error {
	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e.store.EventRepo(), cmd.OutOrStdout())
}

func printEvent(out io.Writer, ev *store.LLMRequestEventRecord) {
	fields := [][2]string{
		{"ID", strconv.FormatInt(ev.ID, 10)},
		{"Time", ev.Timestamp.Local().Format(timeLayout)},
		{"Provider", ev.Provider},
		{"Model", ev.Model},
		{"Purpose", ev.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", ev.InputTokens, ev.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", ev.LatencyMs)},
		{"Success", strconv.FormatBool(ev.Success)},
	}
	if ev.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", ev.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
	}
	section(out, "REQUEST", ev.RequestBody)
	section(out, "RESPONSE", ev.ResponseBody)
}

func section(out io.Writer, title, body string) {
	rule := strings.Repeat("─", 60)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(out, "\n%s\n%s\n%s\n%s\n", rule, title, rule, body)
}

func usageReport(stats []store.LLMUsageStats) *report {
	r := newReport("Purpose", "Calls", "Failed", "Input", "Output", "Avg ms")
	var calls, failed, in, outTok int
	for _, s := range stats {
		r.row(s.Purpose, s.Calls, s.Failures, s.InputTokens, s.OutputTokens, s.AvgLatencyMs)
		calls += s.Calls
		failed += s.Failures
		in += s.InputTokens
		outTok += s.OutputTokens
	}
	r.row("TOTAL", calls, failed, in, outTok, "")
	return r
}

// costReport prices each model's usage. Models without a price are listed
// separately and make the total partial.
func costReport(usage []store.LLMModelUsage) (*report, []string) {
	r := newReport("Model", "Calls", "Input", "Output", "Cost")
	var total float64
	var unpriced []string
	for _, u := range usage {
		price := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			price = formatCost(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		r.row(text.Truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, price)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	r.row(label, "", "", "", formatCost(total))
	return r, unpriced
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
