// Package ofx reads and writes bank statements in the Open Financial
// Exchange format. The parser is deliberately tolerant: OFX 1.x files are
// SGML with unclosed tags, banks disagree on encodings and decimal
// separators, and no checksum or balance assertion exists to validate
// against.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var ErrEmptyFile = errors.New("ofx: file is empty")

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is one parsed statement line. It is ephemeral: produced here,
// consumed by the import pipeline, never persisted in this shape.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      float64
	Type        string
	FITID       string
}

var (
	stmtOpenRe  = regexp.MustCompile(`(?i)<STMTTRN>`)
	stmtCloseRe = regexp.MustCompile(`(?i)</STMTTRN>`)
	fieldRe     = regexp.MustCompile(`(?i)<(TRNTYPE|DTPOSTED|TRNAMT|FITID|NAME|MEMO)>([^<\r\n]*)`)
)

// Parse extracts all STMTTRN blocks from an OFX statement. Records missing a
// parsable date or amount are skipped rather than failing the file.
func Parse(r io.Reader) ([]Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyFile
	}

	content := decode(raw)

	// Split on opening tags instead of matching pairs: SGML statements may
	// omit the closing </STMTTRN> entirely.
	segments := stmtOpenRe.Split(content, -1)
	var out []Transaction
	for _, seg := range segments[1:] {
		if loc := stmtCloseRe.FindStringIndex(seg); loc != nil {
			seg = seg[:loc[0]]
		}
		tx, ok := parseBlock(seg)
		if ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

func parseBlock(block string) (Transaction, bool) {
	fields := map[string]string{}
	for _, m := range fieldRe.FindAllStringSubmatch(block, -1) {
		key := strings.ToUpper(m[1])
		if _, seen := fields[key]; !seen {
			fields[key] = strings.TrimSpace(m[2])
		}
	}

	date, err := parseDate(fields["DTPOSTED"])
	if err != nil {
		return Transaction{}, false
	}
	amount, err := parseAmount(fields["TRNAMT"])
	if err != nil {
		return Transaction{}, false
	}

	desc := fields["MEMO"]
	if desc == "" {
		desc = fields["NAME"]
	}

	return Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        transactionType(fields["TRNTYPE"], amount),
		FITID:       fields["FITID"],
	}, true
}

// decode falls back to Latin-1 when the payload is not valid UTF-8, which is
// the common case for Brazilian bank exports.
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// parseDate accepts DTPOSTED values like 20240115, 20240115120000 and
// 20240115120000[-3:BRT]; only the date portion is kept.
func parseDate(s string) (time.Time, error) {
	digits := s
	for i, r := range s {
		if r < '0' || r > '9' {
			digits = s[:i]
			break
		}
	}
	if len(digits) < 8 {
		return time.Time{}, fmt.Errorf("unparsable DTPOSTED %q", s)
	}
	return time.Parse("20060102", digits[:8])
}

// parseAmount handles dot decimals, comma decimals and the Brazilian
// thousands format 1.234,56.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing TRNAMT")
	}
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func transactionType(trnType string, amount float64) string {
	switch strings.ToUpper(strings.TrimSpace(trnType)) {
	case "CREDIT", "DEP", "DIRECTDEP", "INT":
		return TypeCredit
	case "DEBIT", "PAYMENT", "FEE", "SRVCHG", "ATM", "POS", "CHECK":
		return TypeDebit
	}
	if amount < 0 {
		return TypeDebit
	}
	return TypeCredit
}
