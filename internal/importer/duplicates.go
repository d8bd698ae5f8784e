package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/selovida/labelops/internal/ofx"
	"github.com/selovida/labelops/internal/store"
)

const duplicateSimilarityThreshold = 0.85

// countDuplicateSuspects compares the incoming batch against stored
// transactions in the batch's date range. Exact date+amount+description
// matches count, plus near matches on description for the same date and
// amount. Purely informational: nothing is blocked.
func (p *Pipeline) countDuplicateSuspects(ctx context.Context, records []ofx.Transaction) int {
	if len(records) == 0 {
		return 0
	}

	start, end := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date.Before(start) {
			start = rec.Date
		}
		if rec.Date.After(end) {
			end = rec.Date
		}
	}

	existing, err := p.Storage.Transactions.List(ctx, store.TransactionFilter{
		StartDate: start,
		EndDate:   end.Add(24 * time.Hour),
	})
	if err != nil || len(existing) == 0 {
		return 0
	}

	exact := make(map[string]bool, len(existing))
	byDayAmount := make(map[string][]string)
	for _, tx := range existing {
		exact[contentKey(tx.Date, tx.Amount, tx.Description)] = true
		k := dayAmountKey(tx.Date, tx.Amount)
		byDayAmount[k] = append(byDayAmount[k], strings.ToLower(tx.Description))
	}

	suspects := 0
	for _, rec := range records {
		if exact[contentKey(rec.Date, rec.Amount, rec.Description)] {
			suspects++
			continue
		}
		desc := strings.ToLower(rec.Description)
		for _, candidate := range byDayAmount[dayAmountKey(rec.Date, rec.Amount)] {
			if similarity(desc, candidate) >= duplicateSimilarityThreshold {
				suspects++
				break
			}
		}
	}
	return suspects
}

func contentKey(date time.Time, amount float64, description string) string {
	return fmt.Sprintf("%s|%.2f|%s", date.Format("2006-01-02"), amount, strings.ToLower(strings.TrimSpace(description)))
}

func dayAmountKey(date time.Time, amount float64) string {
	return fmt.Sprintf("%s|%.2f", date.Format("2006-01-02"), amount)
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
