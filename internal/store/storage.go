package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/selovida/labelops/internal/rules"
)

// TransactionFilter narrows List and the dashboard aggregations.
type TransactionFilter struct {
	Type      string
	Category  string
	Status    string
	Search    string
	StartDate time.Time
	EndDate   time.Time
}

type TypeTotal struct {
	Type  string  `db:"transaction_type" json:"type"`
	Total float64 `db:"total" json:"total"`
	Count int     `db:"count" json:"count"`
}

type CategoryTotal struct {
	Category string  `db:"category" json:"category"`
	Type     string  `db:"transaction_type" json:"type"`
	Total    float64 `db:"total" json:"total"`
	Count    int     `db:"count" json:"count"`
}

type Storage struct {
	Transactions interface {
		Insert(ctx context.Context, tx *FinancialTransaction) error
		Update(ctx context.Context, tx *FinancialTransaction) error
		Delete(ctx context.Context, id int64) error
		Get(ctx context.Context, id int64) (*FinancialTransaction, error)
		List(ctx context.Context, filter TransactionFilter) ([]FinancialTransaction, error)
		SummaryByType(ctx context.Context, filter TransactionFilter) ([]TypeTotal, error)
		SummaryByCategory(ctx context.Context, filter TransactionFilter) ([]CategoryTotal, error)
	}

	Artists interface {
		Insert(ctx context.Context, artist *Artist) error
		List(ctx context.Context) ([]Artist, error)
		GetByArtisticName(ctx context.Context, name string) (*Artist, error)
		UpsertSensitiveData(ctx context.Context, data *ArtistSensitiveData) error
	}

	Releases interface {
		Insert(ctx context.Context, release *Release) error
		Get(ctx context.Context, id int64) (*Release, error)
		List(ctx context.Context) ([]Release, error)
		SetShareApplied(ctx context.Context, id int64, applied *bool) error
		ListParticipants(ctx context.Context, releaseID int64) ([]ReleaseParticipant, error)
		ReplaceParticipants(ctx context.Context, releaseID int64, participants []ReleaseParticipant) error
	}

	PendingShares interface {
		Insert(ctx context.Context, share *PendingShare) error
		Update(ctx context.Context, share *PendingShare) error
		UpdateStatus(ctx context.Context, id int64, status string) error
		Delete(ctx context.Context, id int64) error
		Get(ctx context.Context, id int64) (*PendingShare, error)
		List(ctx context.Context) ([]PendingShare, error)
	}

	ImportHistory interface {
		Insert(ctx context.Context, history *ImportHistory) error
		GetLatest(ctx context.Context, limit int) ([]ImportHistory, error)
	}

	// Rules is the durable adapter behind the categorization engine.
	Rules rules.Store
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Transactions:  &TransactionStore{db: db},
		Artists:       &ArtistStore{db: db},
		Releases:      &ReleaseStore{db: db},
		PendingShares: &PendingShareStore{db: db},
		ImportHistory: &ImportHistoryStore{db: db},
		Rules:         &RuleStore{db: db},
	}
}
