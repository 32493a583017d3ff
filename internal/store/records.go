package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/pyqtrack/internal/links"
	"github.com/abhisek/pyqtrack/internal/settings"
	"github.com/abhisek/pyqtrack/internal/tracker"
)

// versionsKept is how many old versions of each record survive a save.
const versionsKept = 20

// PrimaryRecord is the persisted tracker content.
type PrimaryRecord struct {
	Data  tracker.Tree     `json:"data"`
	Links []links.LinkEdge `json:"links"`
}

// RecordRepo reads and writes the primary and settings records. Reads
// never fail hard: a missing record yields the empty/default value, and a
// corrupt one yields the same value together with an error describing
// what was discarded.
type RecordRepo struct {
	snaps SnapshotRepo
}

func NewRecordRepo(snaps SnapshotRepo) *RecordRepo {
	return &RecordRepo{snaps: snaps}
}

// Primary loads the latest primary record.
func (r *RecordRepo) Primary(ctx context.Context) (PrimaryRecord, error) {
	snap, err := r.snaps.Latest(ctx, KindState)
	if err != nil || snap == nil {
		return PrimaryRecord{}, err
	}
	return DecodePrimary(snap.Data)
}

// SavePrimary stores a new version of the primary record.
func (r *RecordRepo) SavePrimary(ctx context.Context, rec PrimaryRecord) error {
	return r.save(ctx, KindState, rec)
}

// ClearPrimary removes every stored version of the primary record.
func (r *RecordRepo) ClearPrimary(ctx context.Context) error {
	return r.snaps.Clear(ctx, KindState)
}

// Settings loads the latest settings record.
func (r *RecordRepo) Settings(ctx context.Context) (settings.Settings, error) {
	snap, err := r.snaps.Latest(ctx, KindSettings)
	if err != nil || snap == nil {
		return settings.Defaults(), err
	}
	return DecodeSettings(snap.Data)
}

// SaveSettings stores a new version of the settings record.
func (r *RecordRepo) SaveSettings(ctx context.Context, s settings.Settings) error {
	return r.save(ctx, KindSettings, s)
}

func (r *RecordRepo) save(ctx context.Context, kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", kind, err)
	}
	if err := r.snaps.Save(ctx, &Snapshot{Kind: kind, Data: data}); err != nil {
		return err
	}
	return r.snaps.Prune(ctx, kind, versionsKept)
}

// DecodePrimary parses a primary record. The data and links fields are
// checked independently: a field that fails its schema is replaced by an
// empty list and reported in the returned error, while the other field is
// kept. A missing links field is an empty list.
func DecodePrimary(raw []byte) (PrimaryRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return PrimaryRecord{}, fmt.Errorf("primary record: %w", err)
	}

	var (
		rec  PrimaryRecord
		errs []error
	)
	if d, ok := fields["data"]; ok {
		if err := decodeChecked(semestersSchema, d, &rec.Data); err != nil {
			errs = append(errs, fmt.Errorf("data: %w", err))
			rec.Data = nil
		}
	} else {
		errs = append(errs, errors.New("data: missing"))
	}
	if l, ok := fields["links"]; ok && string(l) != "null" {
		if err := decodeChecked(linksSchema, l, &rec.Links); err != nil {
			errs = append(errs, fmt.Errorf("links: %w", err))
			rec.Links = nil
		}
	}
	if err := errors.Join(errs...); err != nil {
		return rec, fmt.Errorf("primary record: %w", err)
	}
	return rec, nil
}

// DecodeSettings parses a settings record. Missing fields take their
// defaults; out-of-range values are replaced by defaults and reported.
func DecodeSettings(raw []byte) (settings.Settings, error) {
	var partial struct {
		CardWidth       *int  `json:"cardWidth"`
		FontSize        *int  `json:"fontSize"`
		CardPadding     *int  `json:"cardPadding"`
		ShowFrequency   *bool `json:"showFrequency"`
		TwoColumnLayout *bool `json:"twoColumnLayout"`
	}
	if err := json.Unmarshal(raw, &partial); err != nil {
		return settings.Defaults(), fmt.Errorf("settings record: %w", err)
	}

	s := settings.Defaults()
	if partial.CardWidth != nil {
		s.CardWidth = *partial.CardWidth
	}
	if partial.FontSize != nil {
		s.FontSize = *partial.FontSize
	}
	if partial.CardPadding != nil {
		s.CardPadding = *partial.CardPadding
	}
	if partial.ShowFrequency != nil {
		s.ShowFrequency = *partial.ShowFrequency
	}
	if partial.TwoColumnLayout != nil {
		s.TwoColumnLayout = *partial.TwoColumnLayout
	}

	if err := s.Validate(); err != nil {
		return s.Sanitize(), fmt.Errorf("settings record: %w", err)
	}
	return s, nil
}

// decodeChecked validates raw against schema before unmarshalling it.
func decodeChecked(schema *jsonschema.Schema, raw json.RawMessage, v any) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	if err := schema.Validate(inst); err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
