// Package pricing computes per-turn and session-total cost from token
// usage records and a static pricing table.
package pricing

import "github.com/manishiitg/deepseek-chat-go/llmtypes"

// Table maps token categories to unit prices, expressed per 1K tokens.
// All prices must be >= 0.
type Table struct {
	CacheMissPer1K float64
	CacheHitPer1K  float64
	OutputPer1K    float64
}

// DeepSeekChatCNY returns the DeepSeek platform list prices in CNY:
// 2 yuan per 1M cache-miss input tokens, 0.5 per 1M cache-hit input
// tokens, 8 per 1M output tokens.
func DeepSeekChatCNY() Table {
	return Table{
		CacheMissPer1K: 2.0 / 1000,
		CacheHitPer1K:  0.5 / 1000,
		OutputPer1K:    8.0 / 1000,
	}
}

// TurnCost is the computed cost of a single completion call
type TurnCost struct {
	Input  float64
	Output float64
	Total  float64
}

// Cost computes the cost of one usage record against the table.
// When the provider did not report a cache breakdown (hit and miss both
// zero with input tokens present), all input tokens are priced as
// cache-miss. Negative token counts are treated as zero.
func (t Table) Cost(usage llmtypes.Usage) TurnCost {
	hit := clampTokens(usage.CacheHitTokens)
	miss := clampTokens(usage.CacheMissTokens)
	input := clampTokens(usage.InputTokens)
	output := clampTokens(usage.OutputTokens)

	if hit == 0 && miss == 0 && input > 0 {
		miss = input
	}

	cost := TurnCost{
		Input:  float64(miss)/1000*t.CacheMissPer1K + float64(hit)/1000*t.CacheHitPer1K,
		Output: float64(output) / 1000 * t.OutputPer1K,
	}
	cost.Total = cost.Input + cost.Output
	return cost
}

func clampTokens(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Ledger accumulates token counts and cost across the turns of one
// session. Mutated additively after every successful call; never reset
// except at process start. Totals never decrease and never go negative.
type Ledger struct {
	Turns int

	InputTokens     int
	CacheHitTokens  int
	CacheMissTokens int
	OutputTokens    int

	InputCost  float64
	OutputCost float64
	TotalCost  float64
}

// Record prices one usage record against the table, adds it to the
// running totals and returns the cost of this turn.
func (l *Ledger) Record(usage llmtypes.Usage, table Table) TurnCost {
	cost := table.Cost(usage)

	l.Turns++
	l.InputTokens += clampTokens(usage.InputTokens)
	l.CacheHitTokens += clampTokens(usage.CacheHitTokens)
	l.CacheMissTokens += clampTokens(usage.CacheMissTokens)
	l.OutputTokens += clampTokens(usage.OutputTokens)

	l.InputCost += cost.Input
	l.OutputCost += cost.Output
	l.TotalCost += cost.Total

	return cost
}
