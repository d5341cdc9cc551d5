// Package history reads clipboard history from cliphist and turns it into
// launcher entries.
//
// cliphist prints one record per line, newest first:
//
//	<id>\t<content preview>
//
// The id is the only thing cliphist can resolve back to the stored content,
// so it is carried through untouched as Entry.Value.
package history

import (
	"bytes"
)

// Uninitialized is the notice cliphist prints before anything has been
// stored. It is not a history record.
const Uninitialized = "opening db: please store something first"

// Entry is one selectable item.
type Entry struct {
	Name        string
	Description string
	// Value is passed back to the selection handler.
	Value string
	// Icon and Emoji are optional. Empty means absent (NULL across the C ABI).
	Icon  string
	Emoji string
}

// Records splits collector output into raw lines. A leading Uninitialized
// notice is dropped only when other records follow it.
func Records(output []byte) [][]byte {
	records := bytes.Split(output, []byte{'\n'})
	if len(records) > 1 && string(records[0]) == Uninitialized {
		records = records[1:]
	}
	return records
}

// Parse converts collector output into entries, preserving record order.
// Records without a TAB are dropped. Only the first TAB separates id from
// content; later ones belong to the content.
func Parse(output []byte) []Entry {
	records := Records(output)
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		id, content, ok := bytes.Cut(rec, []byte{'\t'})
		if !ok {
			continue
		}
		c := string(content)
		entries = append(entries, Entry{
			Name:        c,
			Description: c,
			Value:       string(id),
		})
	}
	return entries
}
