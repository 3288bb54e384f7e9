package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Alert is a processed security alert as the dashboard displays it.
type Alert struct {
	ID          int64    `json:"id"`
	Source      string   `json:"source"`
	AlertType   string   `json:"alert_type"`
	Severity    string   `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Timestamp   string   `json:"timestamp"`
	ThreatScore float64  `json:"threat_score"`
	Indicators  []string `json:"indicators,omitempty"`
}

// Insight is the oracle's conversational summary of the current threat
// picture, rendered verbatim by the dashboard.
type Insight struct {
	Greeting         string   `json:"greeting"`
	StatusEmoji      string   `json:"status_emoji"`
	Headline         string   `json:"headline"`
	Story            string   `json:"story"`
	ActionsTaken     []string `json:"actions_taken"`
	TechnicalSummary string   `json:"technical_summary"`
	Confidence       float64  `json:"confidence"`
	GeneratedAt      string   `json:"generated_at"`
	AIPowered        bool     `json:"ai_powered"`
}

// Analytics is the consolidated dashboard payload for a time range:
// counts, per-severity breakdown, the recent alerts, and the insight.
type Analytics struct {
	TotalAlerts      int            `json:"total_alerts"`
	RiskScore        float64        `json:"risk_score"`
	AlertsBySeverity map[string]int `json:"alerts_by_severity"`
	Alerts           []Alert        `json:"alerts"`
	AIInsight        Insight        `json:"ai_insight"`
}

// GetAnalytics fetches the consolidated security stats for the given
// time range ("hour", "today", or "week").
func (c *Client) GetAnalytics(ctx context.Context, timeRange string) (*Analytics, error) {
	if timeRange == "" {
		timeRange = "today"
	}
	switch timeRange {
	case "hour", "today", "week":
	default:
		return nil, fmt.Errorf("unknown time range %q", timeRange)
	}

	q := url.Values{"time_range": {timeRange}}
	var analytics Analytics
	if err := c.do(ctx, http.MethodGet, "api/analytics?"+q.Encode(), nil, &analytics); err != nil {
		return nil, classify(err, ErrServiceUnavailable)
	}
	return &analytics, nil
}
