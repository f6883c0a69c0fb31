package narrative

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/ecomlytics-backend/internal/insights"
	"github.com/shopspring/decimal"
)

// Tables holds the structured comparison output the summary is written from.
// Driver slices are ordered by delta descending; only the head row is quoted.
type Tables struct {
	KPIDelta    []insights.DeltaRow
	Components  []insights.Component
	TopSKUs     []insights.DriverRow
	TopChannels []insights.DriverRow
}

// RuleBasedSummary renders the deterministic markdown diagnosis. It never
// fails: missing tables simply drop their lines.
func RuleBasedSummary(tables Tables) string {
	deltas := deltaIndex(tables.KPIDelta)
	components := componentIndex(tables.Components)

	var lines []string
	lines = append(lines, "## Executive Summary")
	lines = append(lines, fmt.Sprintf("- GMV changed by %s; Orders changed by %+.0f.",
		fmtMoney(deltas["GMV"]), deltas["ORDERS"]))
	if gp, ok := deltas["GROSS_PROFIT"]; ok {
		lines = append(lines, fmt.Sprintf("- Gross Profit changed by %s.", fmtMoney(gp)))
	}

	lines = append(lines, "")
	lines = append(lines, "## Why it changed (Price / Volume / Mix)")
	lines = append(lines, fmt.Sprintf("- Volume effect: %s", fmtMoney(components["Volume_effect"])))
	lines = append(lines, fmt.Sprintf("- Price effect: %s", fmtMoney(components["Price_effect"])))
	lines = append(lines, fmt.Sprintf("- Mix effect: %s (residual, driven by SKU/channel composition)",
		fmtMoney(components["Mix_effect"])))

	lines = append(lines, "")
	lines = append(lines, "## Top Drivers")
	if len(tables.TopSKUs) > 0 {
		head := tables.TopSKUs[0]
		lines = append(lines, fmt.Sprintf("- Top SKU driver by GMV delta: **%s** (%s)",
			head.Key, fmtMoney(head.Delta)))
	}
	if len(tables.TopChannels) > 0 {
		head := tables.TopChannels[0]
		lines = append(lines, fmt.Sprintf("- Top Channel driver by GMV delta: **%s** (%s)",
			head.Key, fmtMoney(head.Delta)))
	}

	lines = append(lines, "")
	lines = append(lines, "## Recommended Actions (next 7 days)")
	lines = append(lines, "- Validate whether the change is driven by a few SKUs (stockouts, price changes, promo ending).")
	lines = append(lines, "- If Volume effect is negative: check inventory availability and fulfillment constraints by channel.")
	lines = append(lines, "- If Price effect is negative: review pricing changes, discounts, and shipping fees impacting net price.")
	lines = append(lines, "- If Mix effect is negative: shift traffic/supply toward higher-margin SKUs or channels.")

	lines = append(lines, "")
	lines = append(lines, "## Data Checks")
	lines = append(lines, "- Confirm order_date completeness and no missing days in the current window.")
	lines = append(lines, "- Verify SKU mapping consistency (no duplicate/renamed SKUs).")
	lines = append(lines, "- Validate unit_cost coverage if Gross Profit is used.")

	return strings.Join(lines, "\n")
}

func deltaIndex(rows []insights.DeltaRow) map[string]float64 {
	idx := make(map[string]float64, len(rows))
	for _, row := range rows {
		idx[row.Metric] = row.Delta
	}
	return idx
}

func componentIndex(components []insights.Component) map[string]float64 {
	idx := make(map[string]float64, len(components))
	for _, c := range components {
		idx[c.Name] = c.Value
	}
	return idx
}

// fmtMoney renders a dollar amount with thousands separators and two decimal
// places, keeping the sign ahead of the currency symbol.
func fmtMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(whole)

	if negative {
		return fmt.Sprintf("-$%s.%s", grouped, frac)
	}
	return fmt.Sprintf("$%s.%s", grouped, frac)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
