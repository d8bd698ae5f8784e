package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/selovida/labelops/internal/ai"
	"github.com/selovida/labelops/internal/logger"
	"github.com/selovida/labelops/internal/rules"
	"github.com/selovida/labelops/internal/store"
)

// ---------------------------------------------------------------------------
// fakes shared by the importer tests
// ---------------------------------------------------------------------------

type fakeTransactionStore struct {
	existing []store.FinancialTransaction
	inserted []store.FinancialTransaction
	failOn   map[string]bool
}

func (f *fakeTransactionStore) Insert(ctx context.Context, tx *store.FinancialTransaction) error {
	if f.failOn[tx.Description] {
		return errors.New("insert failed")
	}
	tx.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *tx)
	return nil
}

func (f *fakeTransactionStore) Update(ctx context.Context, tx *store.FinancialTransaction) error {
	return nil
}
func (f *fakeTransactionStore) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeTransactionStore) Get(ctx context.Context, id int64) (*store.FinancialTransaction, error) {
	return nil, nil
}
func (f *fakeTransactionStore) List(ctx context.Context, filter store.TransactionFilter) ([]store.FinancialTransaction, error) {
	return f.existing, nil
}
func (f *fakeTransactionStore) SummaryByType(ctx context.Context, filter store.TransactionFilter) ([]store.TypeTotal, error) {
	return nil, nil
}
func (f *fakeTransactionStore) SummaryByCategory(ctx context.Context, filter store.TransactionFilter) ([]store.CategoryTotal, error) {
	return nil, nil
}

type fakeHistoryStore struct {
	records []store.ImportHistory
}

func (f *fakeHistoryStore) Insert(ctx context.Context, h *store.ImportHistory) error {
	h.ID = int64(len(f.records) + 1)
	f.records = append(f.records, *h)
	return nil
}
func (f *fakeHistoryStore) GetLatest(ctx context.Context, limit int) ([]store.ImportHistory, error) {
	return f.records, nil
}

type fakeArtistStore struct {
	artists   []store.Artist
	sensitive []store.ArtistSensitiveData
}

func (f *fakeArtistStore) Insert(ctx context.Context, artist *store.Artist) error {
	artist.ID = int64(len(f.artists) + 1)
	f.artists = append(f.artists, *artist)
	return nil
}
func (f *fakeArtistStore) List(ctx context.Context) ([]store.Artist, error) {
	return f.artists, nil
}
func (f *fakeArtistStore) GetByArtisticName(ctx context.Context, name string) (*store.Artist, error) {
	for i := range f.artists {
		if strings.EqualFold(f.artists[i].ArtisticName, name) {
			return &f.artists[i], nil
		}
	}
	return nil, nil
}
func (f *fakeArtistStore) UpsertSensitiveData(ctx context.Context, data *store.ArtistSensitiveData) error {
	f.sensitive = append(f.sensitive, *data)
	return nil
}

type fakeClassifier struct {
	result []ai.Classification
	err    error
	calls  int
	batch  []string
}

func (f *fakeClassifier) ClassifyBatch(ctx context.Context, descriptions []string) ([]ai.Classification, error) {
	f.calls++
	f.batch = descriptions
	return f.result, f.err
}

func newTestPipeline(txs *fakeTransactionStore, history *fakeHistoryStore, classifier ai.Classifier) *Pipeline {
	return &Pipeline{
		Storage: &store.Storage{
			Transactions:  txs,
			ImportHistory: history,
			Rules:         rules.NewMemoryStore(),
		},
		Engine:     rules.NewEngine(rules.NewMemoryStore()),
		Classifier: classifier,
		Log:        logger.New(logger.LevelError),
	}
}

const testStatement = `<OFX><BANKTRANLIST>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115
<TRNAMT>1500.00
<MEMO>TED RECEBIDA SPOTIFY AB
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240116
<TRNAMT>-89.90
<MEMO>PAG BOLETO FORNECEDOR ZZZ
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240117
<TRNAMT>-42.00
<MEMO>COMPRA CARTAO QWERTY
</STMTTRN>
</BANKTRANLIST></OFX>`

// ---------------------------------------------------------------------------
// OFX import pipeline
// ---------------------------------------------------------------------------

func TestImportOFXRulesThenAIThenFallback(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	history := &fakeHistoryStore{}
	classifier := &fakeClassifier{result: []ai.Classification{
		{Category: "producao_musical", Type: "despesas"},
		{}, // classifier punts on the third description
	}}
	p := newTestPipeline(txs, history, classifier)

	summary, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)

	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.RuleMatched)
	require.Equal(t, 1, summary.AIClassified)
	require.Equal(t, 1, summary.Fallback)
	require.Equal(t, 3, summary.Inserted)
	require.Equal(t, 0, summary.Errors)

	// One batched call carrying only the descriptions the rules missed.
	require.Equal(t, 1, classifier.calls)
	require.Equal(t, []string{"PAG BOLETO FORNECEDOR ZZZ", "COMPRA CARTAO QWERTY"}, classifier.batch)

	require.Len(t, txs.inserted, 3)
	require.Equal(t, "royalties_streaming", txs.inserted[0].Category)
	require.Equal(t, "producao_musical", txs.inserted[1].Category)
	require.Equal(t, FallbackCategory, txs.inserted[2].Category)
	require.Equal(t, "despesas", txs.inserted[2].Type) // debit sign drives the fallback type
	for _, tx := range txs.inserted {
		require.Equal(t, store.TransactionStatusPending, tx.Status)
	}
}

func TestImportOFXClassifierFailureFallsBack(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	history := &fakeHistoryStore{}
	classifier := &fakeClassifier{err: errors.New("api unreachable")}
	p := newTestPipeline(txs, history, classifier)

	summary, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)

	require.Equal(t, 1, summary.RuleMatched)
	require.Equal(t, 0, summary.AIClassified)
	require.Equal(t, 2, summary.Fallback)
	require.Equal(t, 3, summary.Inserted)
}

func TestImportOFXWithoutClassifier(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	history := &fakeHistoryStore{}
	p := newTestPipeline(txs, history, nil)

	summary, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)
	require.Equal(t, 1, summary.RuleMatched)
	require.Equal(t, 2, summary.Fallback)
	require.Equal(t, 3, summary.Inserted)
}

func TestImportOFXPartialInsertFailure(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{failOn: map[string]bool{"PAG BOLETO FORNECEDOR ZZZ": true}}
	history := &fakeHistoryStore{}
	p := newTestPipeline(txs, history, nil)

	summary, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)
	require.Equal(t, 3, summary.Total)
	require.Equal(t, 2, summary.Inserted)
	require.Equal(t, 1, summary.Errors)

	require.Len(t, history.records, 1)
	require.Equal(t, store.ImportStatusPartial, history.records[0].Status)
	require.Equal(t, 2, history.records[0].Inserted)
}

func TestImportOFXReimportAppendsAndFlagsDuplicates(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	history := &fakeHistoryStore{}
	p := newTestPipeline(txs, history, nil)
	ctx := context.Background()

	first, err := p.ImportOFX(ctx, strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)
	require.Equal(t, 0, first.DuplicateSuspects)

	// Same file again: everything is flagged as a suspect but nothing is
	// blocked, the rows are appended a second time.
	txs.existing = txs.inserted
	second, err := p.ImportOFX(ctx, strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)
	require.Equal(t, 3, second.DuplicateSuspects)
	require.Equal(t, 3, second.Inserted)
	require.Len(t, txs.inserted, 6)
}

func TestImportOFXNearDuplicateDetection(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	txs := &fakeTransactionStore{existing: []store.FinancialTransaction{
		{Description: "TED RECEBIDA SPOTIFY AB 1", Amount: 1500, Date: day},
	}}
	history := &fakeHistoryStore{}
	p := newTestPipeline(txs, history, nil)

	// Same day, same amount, description one character off.
	summary, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)
	require.Equal(t, 1, summary.DuplicateSuspects)
}

func TestImportOFXEmptyFile(t *testing.T) {
	t.Parallel()
	p := newTestPipeline(&fakeTransactionStore{}, &fakeHistoryStore{}, nil)

	_, err := p.ImportOFX(context.Background(), strings.NewReader(""), "vazio.ofx")
	require.Error(t, err)
}

func TestImportOFXRecordsHistory(t *testing.T) {
	t.Parallel()
	txs := &fakeTransactionStore{}
	history := &fakeHistoryStore{}
	p := newTestPipeline(txs, history, nil)

	_, err := p.ImportOFX(context.Background(), strings.NewReader(testStatement), "extrato.ofx")
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	require.Equal(t, store.ImportKindOFX, rec.Kind)
	require.Equal(t, "extrato.ofx", rec.SourceFile)
	require.Equal(t, store.ImportStatusSuccess, rec.Status)
	require.Equal(t, 3, rec.Total)
	require.Equal(t, 3, rec.Inserted)
}
