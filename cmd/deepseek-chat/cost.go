package main

import (
	"fmt"
	"io"

	"github.com/manishiitg/deepseek-chat-go/llmtypes"
	"github.com/manishiitg/deepseek-chat-go/pkg/pricing"
)

// printTurnUsage prints the token and cost detail for one completed turn
func printTurnUsage(out io.Writer, usage llmtypes.Usage, cost pricing.TurnCost) {
	fmt.Fprintf(out, "\n===== TOKEN USAGE =====\n")
	fmt.Fprintf(out, "Input:  %d tokens [cache hit: %d | miss: %d]\n", usage.InputTokens, usage.CacheHitTokens, usage.CacheMissTokens)
	fmt.Fprintf(out, "Output: %d tokens\n", usage.OutputTokens)
	fmt.Fprintf(out, "Total:  %d tokens\n", usage.TotalTokens)

	fmt.Fprintf(out, "\n===== TURN COST =====\n")
	fmt.Fprintf(out, "Input cost:  ¥%.4f\n", cost.Input)
	fmt.Fprintf(out, "Output cost: ¥%.4f\n", cost.Output)
	fmt.Fprintf(out, "Turn total:  ¥%.4f\n", cost.Total)
}

// printSessionReport prints the accumulated ledger on exit
func printSessionReport(out io.Writer, ledger *pricing.Ledger) {
	fmt.Fprintf(out, "\n===== SESSION COST REPORT =====\n")
	fmt.Fprintf(out, "Turns:  %d\n", ledger.Turns)
	fmt.Fprintf(out, "Input:  %d tokens [cache hit: %d | miss: %d]\n", ledger.InputTokens, ledger.CacheHitTokens, ledger.CacheMissTokens)
	fmt.Fprintf(out, "Output: %d tokens\n", ledger.OutputTokens)
	fmt.Fprintf(out, "Input cost:    ¥%.4f\n", ledger.InputCost)
	fmt.Fprintf(out, "Output cost:   ¥%.4f\n", ledger.OutputCost)
	fmt.Fprintf(out, "Session total: ¥%.4f\n", ledger.TotalCost)
}
