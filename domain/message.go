// Package domain contains core concepts of the disaster-response pipeline.
// This file defines the raw records read from the source CSV files.
package domain

// Message is one row of the messages file.
type Message struct {
	ID       int64
	Text     string
	Original string // untranslated text, may be empty
	Genre    string
}

// CategoryRecord carries the encoded labels of one message,
// e.g. "related-1;request-0;offer-0".
type CategoryRecord struct {
	ID      int64
	Encoded string
}

// MergedRecord is a message joined with its category record on ID.
type MergedRecord struct {
	Message
	Categories string
}
