package ofx

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000[-3:BRT]
<TRNAMT>1500.00
<FITID>2024011501
<NAME>TED RECEBIDA
<MEMO>TED RECEBIDA SPOTIFY AB
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240116
<TRNAMT>-250,50
<FITID>2024011601
<NAME>PAGAMENTO ESTUDIO XYZ
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestParse(t *testing.T) {
	t.Parallel()
	txs, err := Parse(strings.NewReader(sampleStatement))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), txs[0].Date)
	require.Equal(t, "TED RECEBIDA SPOTIFY AB", txs[0].Description) // MEMO beats NAME
	require.Equal(t, 1500.00, txs[0].Amount)
	require.Equal(t, TypeCredit, txs[0].Type)
	require.Equal(t, "2024011501", txs[0].FITID)

	require.Equal(t, "PAGAMENTO ESTUDIO XYZ", txs[1].Description) // NAME fallback
	require.Equal(t, -250.50, txs[1].Amount)
	require.Equal(t, TypeDebit, txs[1].Type)
}

func TestParseEmptyFile(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse(strings.NewReader("   \n\t  "))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseUnclosedBlocks(t *testing.T) {
	t.Parallel()
	// SGML statements often omit </STMTTRN> entirely.
	statement := `<OFX><BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110
<TRNAMT>-10.00
<MEMO>UBER TRIP
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240111
<TRNAMT>20.00
<MEMO>PIX RECEBIDO
</BANKTRANLIST></OFX>`

	txs, err := Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.Equal(t, "UBER TRIP", txs[0].Description)
	require.Equal(t, "PIX RECEBIDO", txs[1].Description)
}

func TestParseSkipsBrokenRecords(t *testing.T) {
	t.Parallel()
	statement := `<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>notadate
<TRNAMT>-10.00
<MEMO>BROKEN
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110
<TRNAMT>-10.00
<MEMO>OK
</STMTTRN>`

	txs, err := Parse(strings.NewReader(statement))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "OK", txs[0].Description)
}

func TestParseLatin1Fallback(t *testing.T) {
	t.Parallel()
	statement := `<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110
<TRNAMT>-99.90
<MEMO>LOCAÇÃO ESTÚDIO
</STMTTRN>`

	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(statement))
	require.NoError(t, err)

	txs, err := Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, "LOCAÇÃO ESTÚDIO", txs[0].Description)
}

func TestParseAmountFormats(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want float64
	}{
		{"1234.56", 1234.56},
		{"1234,56", 1234.56},
		{"1.234,56", 1234.56},
		{"-250,50", -250.50},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	_, err := parseAmount("")
	require.Error(t, err)
	_, err = parseAmount("abc")
	require.Error(t, err)
}

func TestTransactionTypeFallsBackOnSign(t *testing.T) {
	t.Parallel()
	require.Equal(t, TypeDebit, transactionType("OTHER", -1))
	require.Equal(t, TypeCredit, transactionType("OTHER", 1))
	require.Equal(t, TypeCredit, transactionType("dep", -1)) // explicit type wins over sign
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()
	in := []Transaction{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "Cachê show SP", Amount: 5000, Type: TypeCredit, FITID: "labelops-1"},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Description: "Aluguel estúdio", Amount: -800.50, Type: TypeDebit},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	out, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, in[0].Date, out[0].Date)
	require.Equal(t, in[0].Description, out[0].Description)
	require.Equal(t, in[0].Amount, out[0].Amount)
	require.Equal(t, in[0].FITID, out[0].FITID)
	require.Equal(t, TypeDebit, out[1].Type)
	require.Equal(t, -800.50, out[1].Amount)
}
