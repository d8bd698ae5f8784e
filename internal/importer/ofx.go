// Package importer runs the file-import pipelines: OFX bank statements into
// financial transactions, and artist spreadsheets into artist records.
package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/selovida/labelops/internal/ai"
	"github.com/selovida/labelops/internal/logger"
	"github.com/selovida/labelops/internal/ofx"
	"github.com/selovida/labelops/internal/rules"
	"github.com/selovida/labelops/internal/store"
)

// FallbackCategory is assigned when neither a rule nor the external
// classifier resolves a description.
const FallbackCategory = "outros"

// Summary reports aggregate counts for one import run. Individual row
// failures do not fail the batch; they only show up in Errors.
type Summary struct {
	Total             int `json:"total"`
	RuleMatched       int `json:"rule_matched"`
	AIClassified      int `json:"ai_classified"`
	Fallback          int `json:"fallback"`
	Inserted          int `json:"inserted"`
	Errors            int `json:"errors"`
	DuplicateSuspects int `json:"duplicate_suspects"`
}

// Pipeline wires the OFX parser, the rule engine, the external classifier
// and the transaction store. Classifier may be nil; everything unmatched
// then takes the fallback category.
type Pipeline struct {
	Storage    *store.Storage
	Engine     *rules.Engine
	Classifier ai.Classifier
	Log        *logger.Logger
}

// ImportOFX decodes a bank statement and inserts every record as a pending
// financial transaction. There is no deduplication against earlier imports:
// re-importing the same file appends a second set of rows. Suspected
// duplicates are counted in the summary for the user to review.
func (p *Pipeline) ImportOFX(ctx context.Context, r io.Reader, sourceFile string) (Summary, error) {
	const component = "OFXImport"

	records, err := ofx.Parse(r)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(records)}
	resolved := make([]ai.Classification, len(records))

	var unmatchedIdx []int
	for i, rec := range records {
		rule, err := p.Engine.Match(ctx, rec.Description)
		if err != nil {
			return Summary{}, fmt.Errorf("rule lookup failed: %w", err)
		}
		if rule != nil {
			resolved[i] = ai.Classification{Category: rule.Category, Type: string(rule.Type)}
			summary.RuleMatched++
			continue
		}
		unmatchedIdx = append(unmatchedIdx, i)
	}

	// One batched classification call for everything the rules missed.
	// A failed call is not an import failure; those rows take the fallback.
	if len(unmatchedIdx) > 0 && p.Classifier != nil {
		descriptions := make([]string, len(unmatchedIdx))
		for j, i := range unmatchedIdx {
			descriptions[j] = records[i].Description
		}
		classifications, err := p.Classifier.ClassifyBatch(ctx, descriptions)
		if err != nil {
			p.Log.Warn(component, "Classification call failed, using fallback: %v", err)
		} else {
			for j, i := range unmatchedIdx {
				if j < len(classifications) && classifications[j].Category != "" {
					resolved[i] = ai.Classification{
						Category: classifications[j].Category,
						Type:     classifications[j].Type,
					}
					summary.AIClassified++
				}
			}
		}
	}

	summary.DuplicateSuspects = p.countDuplicateSuspects(ctx, records)

	for i, rec := range records {
		category, txType := resolved[i].Category, resolved[i].Type
		if category == "" {
			category = FallbackCategory
			txType = fallbackType(rec)
			summary.Fallback++
		}

		tx := &store.FinancialTransaction{
			Description: rec.Description,
			Amount:      rec.Amount,
			Type:        txType,
			Category:    category,
			Status:      store.TransactionStatusPending,
			Date:        rec.Date,
		}
		if err := p.Storage.Transactions.Insert(ctx, tx); err != nil {
			p.Log.Error(component, "Failed to insert transaction %q: %v", rec.Description, err)
			summary.Errors++
			continue
		}
		summary.Inserted++
	}

	p.recordHistory(ctx, store.ImportKindOFX, sourceFile, summary)

	p.Log.Info(component, "Imported %s: %d total, %d by rule, %d by AI, %d fallback, %d errors",
		sourceFile, summary.Total, summary.RuleMatched, summary.AIClassified, summary.Fallback, summary.Errors)
	return summary, nil
}

func fallbackType(rec ofx.Transaction) string {
	if rec.Type == ofx.TypeDebit {
		return string(rules.Despesas)
	}
	return string(rules.Receitas)
}

func (p *Pipeline) recordHistory(ctx context.Context, kind, sourceFile string, summary Summary) {
	status := store.ImportStatusSuccess
	switch {
	case summary.Errors > 0 && summary.Inserted == 0:
		status = store.ImportStatusFailure
	case summary.Errors > 0:
		status = store.ImportStatusPartial
	}

	history := &store.ImportHistory{
		Kind:       kind,
		SourceFile: sourceFile,
		Status:     status,
		Total:      summary.Total,
		Inserted:   summary.Inserted,
		Errors:     summary.Errors,
	}
	if err := p.Storage.ImportHistory.Insert(ctx, history); err != nil {
		p.Log.Warn("ImportHistory", "Failed to record import run: %v", err)
	}
}
