package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// validators caches compiled schemas by Schema.Name.
type validators struct {
	mu    sync.Mutex
	byKey map[string]*jsonschema.Schema
}

var schemas = &validators{byKey: map[string]*jsonschema.Schema{}}

func (v *validators) get(s *Schema) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if sch, ok := v.byKey[s.Name]; ok {
		return sch, nil
	}

	// Definitions are Go literals; the compiler wants decoded JSON values.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	url := "schema://pyqtrack/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	v.byKey[s.Name] = sch
	return sch, nil
}

func (v *validators) cached(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.byKey[name]
	return ok
}

// validateResponse checks raw against schema; nil accepts anything.
// Every failure is an *ErrInvalidResponse carrying raw.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(err error) error { return &ErrInvalidResponse{Content: raw, Err: err} }

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalid(fmt.Errorf("invalid JSON: %w", err))
	}
	sch, err := schemas.get(schema)
	if err != nil {
		return invalid(fmt.Errorf("schema %q: %w", schema.Name, err))
	}
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			if v := violations(ve, 3); len(v) > 0 {
				return invalid(errors.New(strings.Join(v, "; ")))
			}
		}
		return invalid(err)
	}
	return nil
}

// violations lists up to limit leaf errors as "location: message".
func violations(ve *jsonschema.ValidationError, limit int) []string {
	var out []string
	for _, u := range ve.BasicOutput().Errors {
		if u.Error == nil || len(out) == limit {
			continue
		}
		b, err := json.Marshal(u.Error)
		var msg string
		if err != nil || json.Unmarshal(b, &msg) != nil {
			continue
		}
		loc := u.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out = append(out, loc+": "+msg)
	}
	return out
}
