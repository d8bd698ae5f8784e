package store

import (
	"time"
)

// FinancialTransaction represents the 'financial_transactions' table.
type FinancialTransaction struct {
	ID          int64     `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Type        string    `db:"transaction_type" json:"transaction_type"`
	Category    string    `db:"category" json:"category"`
	Status      string    `db:"status" json:"status"`
	Date        time.Time `db:"transaction_date" json:"date"`
	ArtistID    *int64    `db:"artist_id" json:"artist_id,omitempty"`
	ContractID  *int64    `db:"contract_id" json:"contract_id,omitempty"`
	ProjectID   *int64    `db:"project_id" json:"project_id,omitempty"`
	EventID     *int64    `db:"event_id" json:"event_id,omitempty"`
	InsertedAt  time.Time `db:"inserted_at" json:"inserted_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction statuses. New rows from imports always start as pendente.
var (
	TransactionStatusPending  = "pendente"
	TransactionStatusPaid     = "pago"
	TransactionStatusCanceled = "cancelado"
)

// Artist represents the 'artists' table.
type Artist struct {
	ID           int64     `db:"id" json:"id"`
	ArtisticName string    `db:"artistic_name" json:"artistic_name"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Genre        string    `db:"genre" json:"genre"`
	InsertedAt   time.Time `db:"inserted_at" json:"inserted_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ArtistSensitiveData represents the 'artist_sensitive_data' table, one row
// per artist. Only written when at least one field carries a value.
type ArtistSensitiveData struct {
	ArtistID   int64     `db:"artist_id" json:"artist_id"`
	CPFCNPJ    string    `db:"cpf_cnpj" json:"cpf_cnpj"`
	BankName   string    `db:"bank_name" json:"bank_name"`
	BankAgency string    `db:"bank_agency" json:"bank_agency"`
	BankAccount string   `db:"bank_account" json:"bank_account"`
	PixKey     string    `db:"pix_key" json:"pix_key"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// HasValue reports whether any sensitive field is non-empty; all-empty rows
// are never upserted.
func (d *ArtistSensitiveData) HasValue() bool {
	return d.CPFCNPJ != "" || d.BankName != "" || d.BankAgency != "" || d.BankAccount != "" || d.PixKey != ""
}

// Release represents the 'releases' table. ShareApplied is the manual
// override; when nil the effective status is derived from participants.
type Release struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	ArtistID     *int64    `db:"artist_id" json:"artist_id,omitempty"`
	ReleaseDate  *time.Time `db:"release_date" json:"release_date,omitempty"`
	ShareApplied *bool     `db:"share_applied" json:"share_applied"`
	InsertedAt   time.Time `db:"inserted_at" json:"inserted_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ReleaseParticipant represents the 'release_participants' table. Rows are
// rewritten wholesale on every edit; Position preserves list order.
type ReleaseParticipant struct {
	ID          int64   `db:"id" json:"id"`
	ReleaseID   int64   `db:"release_id" json:"release_id"`
	Name        string  `db:"name" json:"name"`
	Role        string  `db:"role" json:"role"`
	Percentage  float64 `db:"percentage" json:"percentage"`
	ShareStatus string  `db:"share_status" json:"share_status"`
	Position    int     `db:"position" json:"position"`
}

// PendingShare represents the 'pending_shares' table: a manually logged
// "someone is owed a share" note with no link back to a release.
type PendingShare struct {
	ID              int64     `db:"id" json:"id"`
	MusicTitle      string    `db:"music_title" json:"music_title"`
	ArtistName      string    `db:"artist_name" json:"artist_name"`
	ParticipantName string    `db:"participant_name" json:"participant_name"`
	ParticipantRole string    `db:"participant_role" json:"participant_role"`
	SharePercentage float64   `db:"share_percentage" json:"share_percentage"`
	Status          string    `db:"status" json:"status"`
	Notes           string    `db:"notes" json:"notes"`
	InsertedAt      time.Time `db:"inserted_at" json:"inserted_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

var (
	PendingShareStatusPending  = "pending"
	PendingShareStatusReceived = "received"
)

// ImportHistory represents the 'import_history' table, one row per OFX or
// CSV import run.
type ImportHistory struct {
	ID          int64     `db:"id" json:"id"`
	Kind        string    `db:"kind" json:"kind"`
	SourceFile  string    `db:"source_file" json:"source_file"`
	Status      string    `db:"status" json:"status"`
	Total       int       `db:"total" json:"total"`
	Inserted    int       `db:"inserted" json:"inserted"`
	Errors      int       `db:"errors" json:"errors"`
	ProcessedAt time.Time `db:"processed_at" json:"processed_at"`
}

var (
	ImportKindOFX       = "ofx"
	ImportKindArtistCSV = "artist_csv"
)

var (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusFailure = "failure"
)
