package ofx

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const header = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:UTF-8
CHARSET:NONE
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

`

// Write produces a minimal OFX 1.x bank statement, the mirror of Parse.
func Write(w io.Writer, transactions []Transaction) error {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("<OFX>\n<BANKMSGSRSV1>\n<STMTTRNRS>\n<STMTRS>\n<BANKTRANLIST>\n")

	for i, tx := range transactions {
		trnType := "CREDIT"
		if tx.Type == TypeDebit {
			trnType = "DEBIT"
		}
		fitid := tx.FITID
		if fitid == "" {
			fitid = fmt.Sprintf("%s-%d", tx.Date.Format("20060102"), i+1)
		}
		b.WriteString("<STMTTRN>\n")
		fmt.Fprintf(&b, "<TRNTYPE>%s\n", trnType)
		fmt.Fprintf(&b, "<DTPOSTED>%s\n", tx.Date.Format("20060102"))
		fmt.Fprintf(&b, "<TRNAMT>%.2f\n", tx.Amount)
		fmt.Fprintf(&b, "<FITID>%s\n", fitid)
		fmt.Fprintf(&b, "<MEMO>%s\n", sanitize(tx.Description))
		b.WriteString("</STMTTRN>\n")
	}

	b.WriteString("</BANKTRANLIST>\n")
	fmt.Fprintf(&b, "<DTASOF>%s\n", time.Now().Format("20060102"))
	b.WriteString("</STMTRS>\n</STMTTRNRS>\n</BANKMSGSRSV1>\n</OFX>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "(")
	s = strings.ReplaceAll(s, ">", ")")
	return strings.ReplaceAll(s, "\n", " ")
}
