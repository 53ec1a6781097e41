package console

import (
	"context"
	"strconv"
	"strings"
)

// FieldKind drives both form rendering and payload typing. Payloads are built
// strictly from the descriptor's named fields; nothing else from a submitted
// form reaches the backend.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
)

type Option struct {
	Value string
	Label string
}

type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool

	// Options populates select fields; fetched fresh every time the form
	// opens, never cached.
	Options func(ctx context.Context) ([]Option, error)
}

// Convert turns the submitted form value into the typed payload value.
func (f Field) Convert(raw string) interface{} {
	raw = strings.TrimSpace(raw)
	switch f.Kind {
	case FieldNumber:
		if raw == "" {
			return float64(0)
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
		return raw
	case FieldSelect:
		if raw == "" {
			return nil
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		return raw
	default:
		return raw
	}
}

type Column struct {
	Header string
	Value  func(rec Record) string
}

// Descriptor declares everything entity-specific about a CRUD screen; the
// generic list view and form components are instantiated from it.
type Descriptor struct {
	Name     string // section name, also the URL segment
	Singular string // "Employee", used in titles and prompts
	ListPath string // collection path on the backend

	Columns      []Column
	SearchFields []string
	FormFields   []Field

	// Validate runs against the typed payload before any network call; an
	// error blocks submission and keeps the form open.
	Validate func(payload map[string]interface{}) error

	// Enrich decorates freshly loaded records with derived display fields
	// before filtering and rendering.
	Enrich func(ctx context.Context, client *Client, records []Record) error
}

// RecordPath addresses one record of the collection.
func (d Descriptor) RecordPath(id string) string {
	return d.ListPath + "/" + id
}

// TextColumn is the common case of rendering a field verbatim.
func TextColumn(header, field string) Column {
	return Column{Header: header, Value: func(rec Record) string {
		v := rec.Str(field)
		if v == "" {
			return "-"
		}
		return v
	}}
}
