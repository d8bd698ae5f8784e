package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"

	"github.com/selovida/labelops/internal/store"
)

var ErrEmptyFile = errors.New("importer: file is empty")

// artistFields is the declarative column mapping for artist spreadsheets.
// Alias order matters: the first header found wins for each field.
var artistFields = []Field{
	{Name: "artistic_name", Aliases: []string{"nome artístico", "nome artistico", "artistic name", "artista", "artist name", "nome"}, Required: true},
	{Name: "full_name", Aliases: []string{"nome completo", "full name", "razão social", "razao social"}},
	{Name: "email", Aliases: []string{"email", "e-mail"}},
	{Name: "phone", Aliases: []string{"telefone", "phone", "celular", "whatsapp"}},
	{Name: "genre", Aliases: []string{"gênero", "genero", "genre", "estilo"}},
	{Name: "cpf_cnpj", Aliases: []string{"cpf/cnpj", "cpf", "cnpj", "documento"}},
	{Name: "bank_name", Aliases: []string{"banco", "bank"}},
	{Name: "bank_agency", Aliases: []string{"agência", "agencia", "agency"}},
	{Name: "bank_account", Aliases: []string{"conta bancária", "conta bancaria", "conta", "account"}},
	{Name: "pix_key", Aliases: []string{"chave pix", "pix", "pix key"}},
}

// ArtistImportSummary reports one artist spreadsheet run.
type ArtistImportSummary struct {
	Total            int      `json:"total"`
	Created          int      `json:"created"`
	Skipped          int      `json:"skipped"`
	Errors           int      `json:"errors"`
	SensitiveUpserts int      `json:"sensitive_upserts"`
	UnmappedColumns  []string `json:"unmapped_columns,omitempty"`
}

// ImportArtistsCSV loads an artist spreadsheet. Rows whose artistic name
// already exists are skipped; the sensitive-data row is only upserted when at
// least one sensitive field carries a value.
func (p *Pipeline) ImportArtistsCSV(ctx context.Context, r io.Reader, sourceFile string) (ArtistImportSummary, error) {
	const component = "ArtistImport"

	raw, err := io.ReadAll(r)
	if err != nil {
		return ArtistImportSummary{}, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ArtistImportSummary{}, ErrEmptyFile
	}

	// Every column stays a string: CPF and account columns would otherwise be
	// detected as numeric and empty cells would read back as NaN.
	df := dataframe.ReadCSV(
		strings.NewReader(decodeText(raw)),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return ArtistImportSummary{}, fmt.Errorf("failed to parse spreadsheet: %w", df.Err)
	}

	mapping := ResolveColumns(df.Names(), artistFields)
	if len(mapping.Missing) > 0 {
		return ArtistImportSummary{}, fmt.Errorf("spreadsheet is missing required columns: %s", strings.Join(mapping.Missing, ", "))
	}

	summary := ArtistImportSummary{
		Total:           df.Nrow(),
		UnmappedColumns: mapping.Unmapped,
	}

	for row := 0; row < df.Nrow(); row++ {
		get := func(field string) string {
			col, ok := mapping.Columns[field]
			if !ok {
				return ""
			}
			return strings.TrimSpace(df.Col(col).Elem(row).String())
		}

		name := get("artistic_name")
		if name == "" {
			summary.Skipped++
			continue
		}

		existing, err := p.Storage.Artists.GetByArtisticName(ctx, name)
		if err != nil {
			p.Log.Error(component, "Failed to look up artist %q: %v", name, err)
			summary.Errors++
			continue
		}
		if existing != nil {
			summary.Skipped++
			continue
		}

		artist := &store.Artist{
			ArtisticName: name,
			FullName:     get("full_name"),
			Email:        get("email"),
			Phone:        get("phone"),
			Genre:        get("genre"),
		}
		if err := p.Storage.Artists.Insert(ctx, artist); err != nil {
			p.Log.Error(component, "Failed to insert artist %q: %v", name, err)
			summary.Errors++
			continue
		}
		summary.Created++

		sensitive := &store.ArtistSensitiveData{
			ArtistID:    artist.ID,
			CPFCNPJ:     get("cpf_cnpj"),
			BankName:    get("bank_name"),
			BankAgency:  get("bank_agency"),
			BankAccount: get("bank_account"),
			PixKey:      get("pix_key"),
		}
		if !sensitive.HasValue() {
			continue
		}
		if err := p.Storage.Artists.UpsertSensitiveData(ctx, sensitive); err != nil {
			p.Log.Error(component, "Failed to upsert sensitive data for %q: %v", name, err)
			summary.Errors++
			continue
		}
		summary.SensitiveUpserts++
	}

	p.recordHistory(ctx, store.ImportKindArtistCSV, sourceFile, Summary{
		Total:    summary.Total,
		Inserted: summary.Created,
		Errors:   summary.Errors,
	})

	p.Log.Info(component, "Imported %s: %d rows, %d created, %d skipped, %d errors",
		sourceFile, summary.Total, summary.Created, summary.Skipped, summary.Errors)
	return summary, nil
}

// decodeText falls back to Latin-1 for spreadsheets exported by older tools.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
