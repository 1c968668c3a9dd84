package mimetypes

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"
	TextCSV   MIME = "text/csv"
	TextTSV   MIME = "text/tab-separated-values"

	ApplicationJSON   MIME = "application/json"
	ApplicationOctet  MIME = "application/octet-stream"
	ApplicationSQLite MIME = "application/vnd.sqlite3"
)

// Tabular lists the types the CSV loaders accept.
// Small or irregular CSV files are often sniffed as plain text.
var Tabular = []MIME{TextCSV, TextPlain}

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// MatchesAny reports whether detected is one of the expected types.
func MatchesAny(detected string, expected ...MIME) bool {
	return lo.SomeBy(expected, func(m MIME) bool {
		_, ok := Matches(detected, m)
		return ok
	})
}

// DetectFile sniffs the first bytes of a file.
func DetectFile(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return string(Unknown), err
	}
	return mt.String(), nil
}
