package dataset

import "strings"

// Required columns of the canonical orders schema. Uploads missing any of
// these are rejected outright with a schema error naming every absent column.
var RequiredColumns = []string{
	"order_id", "order_date", "channel", "sku", "quantity", "unit_price",
}

// Candidate header names for optional columns, in priority order.
var (
	costCandidates     = []string{"unit_cost", "cost", "cogs", "product_cost"}
	returnedCandidates = []string{"is_returned", "is_return", "returned", "return_flag", "refund_flag", "is_refund"}
	pickTimeCandidates = []string{"pick_time_sec", "pick_time", "picking_seconds"}
)

// MatchColumn resolves a header from a prioritized candidate list: the first
// case-insensitive exact match wins, then the first substring match. This is
// a heuristic for optional columns only; required columns never go through it.
func MatchColumn(headers []string, candidates []string) (string, bool) {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		for i, h := range lower {
			if h == c {
				return headers[i], true
			}
		}
	}
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		for i, h := range lower {
			if strings.Contains(h, c) {
				return headers[i], true
			}
		}
	}
	return "", false
}
