package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/store"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// WriteJSON writes rec in the persisted {data, links} shape.
func WriteJSON(w io.Writer, rec store.PrimaryRecord) error {
	if rec.Links == nil {
		rec.Links = []links.LinkEdge{}
	}
	if rec.Data == nil {
		rec.Data = tracker.Tree{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

// ReadJSON decodes a record written by WriteJSON or by an earlier
// version of the tracker. Like the store, it returns whatever part of the
// record was usable together with the error describing the rest.
func ReadJSON(r io.Reader) (store.PrimaryRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return store.PrimaryRecord{}, fmt.Errorf("read record: %w", err)
	}
	return store.DecodePrimary(raw)
}
