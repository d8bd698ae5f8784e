package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selovida/labelops/internal/ai"
	"github.com/selovida/labelops/internal/logger"
	"github.com/selovida/labelops/internal/rules"
	"github.com/selovida/labelops/internal/store"
)

func newArtistTestPipeline(artists *fakeArtistStore, history *fakeHistoryStore) *Pipeline {
	return &Pipeline{
		Storage: &store.Storage{
			Artists:       artists,
			ImportHistory: history,
			Rules:         rules.NewMemoryStore(),
		},
		Engine:     rules.NewEngine(rules.NewMemoryStore()),
		Classifier: ai.Classifier(nil),
		Log:        logger.New(logger.LevelError),
	}
}

func TestImportArtistsCSV(t *testing.T) {
	t.Parallel()
	artists := &fakeArtistStore{}
	history := &fakeHistoryStore{}
	p := newArtistTestPipeline(artists, history)

	csv := strings.Join([]string{
		"Nome Artístico,Nome Completo,E-mail,CPF/CNPJ,Chave PIX",
		"MC Luna,Ana Souza,luna@example.com,12345678900,luna@example.com",
		"Beto Brass,Roberto Lima,beto@example.com,,",
	}, "\n")

	summary, err := p.ImportArtistsCSV(context.Background(), strings.NewReader(csv), "artistas.csv")
	require.NoError(t, err)

	require.Equal(t, 2, summary.Total)
	require.Equal(t, 2, summary.Created)
	require.Equal(t, 0, summary.Skipped)
	require.Equal(t, 0, summary.Errors)

	require.Len(t, artists.artists, 2)
	require.Equal(t, "MC Luna", artists.artists[0].ArtisticName)
	require.Equal(t, "Ana Souza", artists.artists[0].FullName)

	// Beto's sensitive cells are all empty, so only Luna gets a row.
	require.Equal(t, 1, summary.SensitiveUpserts)
	require.Len(t, artists.sensitive, 1)
	require.Equal(t, artists.artists[0].ID, artists.sensitive[0].ArtistID)
	require.Equal(t, "12345678900", artists.sensitive[0].CPFCNPJ)
}

func TestImportArtistsCSVSkipsExisting(t *testing.T) {
	t.Parallel()
	artists := &fakeArtistStore{}
	history := &fakeHistoryStore{}
	p := newArtistTestPipeline(artists, history)
	ctx := context.Background()

	require.NoError(t, artists.Insert(ctx, &store.Artist{ArtisticName: "MC Luna"}))

	csv := strings.Join([]string{
		"Nome Artistico,Email",
		"mc luna,outra@example.com",
		"Nova Voz,nova@example.com",
	}, "\n")

	summary, err := p.ImportArtistsCSV(ctx, strings.NewReader(csv), "artistas.csv")
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)
	require.Equal(t, 1, summary.Skipped)
	require.Len(t, artists.artists, 2)
}

func TestImportArtistsCSVMissingRequiredColumn(t *testing.T) {
	t.Parallel()
	p := newArtistTestPipeline(&fakeArtistStore{}, &fakeHistoryStore{})

	csv := "Email,Telefone\na@b.com,119999\n"
	_, err := p.ImportArtistsCSV(context.Background(), strings.NewReader(csv), "artistas.csv")
	require.Error(t, err)
	require.Contains(t, err.Error(), "artistic_name")
}

func TestImportArtistsCSVEmptyFile(t *testing.T) {
	t.Parallel()
	p := newArtistTestPipeline(&fakeArtistStore{}, &fakeHistoryStore{})

	_, err := p.ImportArtistsCSV(context.Background(), strings.NewReader("  \n "), "vazio.csv")
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestImportArtistsCSVReportsUnmappedColumns(t *testing.T) {
	t.Parallel()
	p := newArtistTestPipeline(&fakeArtistStore{}, &fakeHistoryStore{})

	csv := "Nome Artistico,Coluna Misteriosa\nMC Luna,abc\n"
	summary, err := p.ImportArtistsCSV(context.Background(), strings.NewReader(csv), "artistas.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"Coluna Misteriosa"}, summary.UnmappedColumns)
}

func TestImportArtistsCSVRecordsHistory(t *testing.T) {
	t.Parallel()
	history := &fakeHistoryStore{}
	p := newArtistTestPipeline(&fakeArtistStore{}, history)

	csv := "Nome Artistico\nMC Luna\n"
	_, err := p.ImportArtistsCSV(context.Background(), strings.NewReader(csv), "artistas.csv")
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	require.Equal(t, store.ImportKindArtistCSV, history.records[0].Kind)
	require.Equal(t, store.ImportStatusSuccess, history.records[0].Status)
	require.Equal(t, 1, history.records[0].Inserted)
}
