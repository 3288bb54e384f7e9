// Package analytics implements the cardeactl dashboard summary command.
package analytics

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gauciv/cardea/internal/app"
)

var timeRange string

// AnalyticsCmd shows the consolidated security picture for a time range.
var AnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show the security summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.MustFromContext(cmd.Context())
		g, err := a.Guard()
		if err != nil {
			return err
		}
		api, err := g.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		stats, err := api.GetAnalytics(cmd.Context(), timeRange)
		if err != nil {
			return fmt.Errorf("failed to fetch analytics: %w", err)
		}

		pterm.DefaultSection.Println("Security Summary")
		pterm.Info.Printf("Total alerts: %d\n", stats.TotalAlerts)
		pterm.Info.Printf("Risk score: %.1f\n", stats.RiskScore)

		if len(stats.AlertsBySeverity) > 0 {
			severities := make([]string, 0, len(stats.AlertsBySeverity))
			for s := range stats.AlertsBySeverity {
				severities = append(severities, s)
			}
			sort.Strings(severities)
			for _, s := range severities {
				fmt.Printf("  %s: %d\n", s, stats.AlertsBySeverity[s])
			}
		}

		insight := stats.AIInsight
		if insight.Headline != "" {
			pterm.DefaultSection.Println("Insight")
			fmt.Printf("%s %s\n", insight.StatusEmoji, insight.Headline)
			if insight.Story != "" {
				fmt.Println(insight.Story)
			}
			for _, action := range insight.ActionsTaken {
				fmt.Printf("  - %s\n", action)
			}
		}
		return nil
	},
}

func init() {
	AnalyticsCmd.Flags().StringVar(&timeRange, "range", "today", "Time range: hour, today, or week")
}
