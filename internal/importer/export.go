package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/selovida/labelops/internal/store"
)

// WriteTransactionsCSV is the mirror of the spreadsheet import: it exports
// transactions with the canonical Portuguese headers the import recognizes.
func WriteTransactionsCSV(w io.Writer, transactions []store.FinancialTransaction) error {
	cw := csv.NewWriter(w)

	header := []string{"Data", "Descrição", "Valor", "Tipo", "Categoria", "Status"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range transactions {
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			fmt.Sprintf("%.2f", tx.Amount),
			tx.Type,
			tx.Category,
			tx.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
