package console

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// ListView owns the list state for one entity type. State lives on the
// instance, not in package globals, and is handed by reference to the form
// and row-action code paths.
type ListView struct {
	client *Client
	desc   Descriptor
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	snapshot   []Record
}

func NewListView(client *Client, desc Descriptor, logger *slog.Logger) *ListView {
	return &ListView{client: client, desc: desc, logger: logger}
}

func (v *ListView) Descriptor() Descriptor {
	return v.desc
}

// Load fetches the full collection and filters it in memory: the backend has
// no search endpoint, so the query is applied client-side as a
// case-insensitive substring match over the configured fields. Row order is
// whatever the backend returned.
//
// Each Load bumps the view's generation; a response belonging to a
// superseded generation is discarded rather than installed, so a stale
// in-flight fetch can never clobber state after the view has moved on.
func (v *ListView) Load(ctx context.Context, query string) ([]Record, error) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	records, err := v.client.FetchList(ctx, v.desc.ListPath)
	if err != nil {
		return nil, err
	}

	if v.desc.Enrich != nil {
		if err := v.desc.Enrich(ctx, v.client, records); err != nil {
			v.logger.Warn("record enrichment failed", "entity", v.desc.Name, "error", err)
		}
	}

	filtered := Filter(records, query, v.desc.SearchFields)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		v.logger.Debug("discarding stale list response", "entity", v.desc.Name, "generation", gen)
		return filtered, nil
	}
	v.snapshot = filtered
	return filtered, nil
}

// Snapshot returns the rows from the last completed Load.
func (v *ListView) Snapshot() []Record {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Record, len(v.snapshot))
	copy(out, v.snapshot)
	return out
}

// FetchRecord retrieves one record fresh for editing.
func (v *ListView) FetchRecord(ctx context.Context, id string) (Record, error) {
	return v.client.FetchOne(ctx, v.desc.RecordPath(id))
}

// Delete issues the DELETE for one record. Callers reload the list after
// this regardless of the outcome, to resynchronize with the server.
func (v *ListView) Delete(ctx context.Context, id string) (Result, error) {
	return v.client.Remove(ctx, v.desc.RecordPath(id))
}

// Filter applies the search predicate: keep records where the query is a
// case-insensitive substring of at least one searchable field.
func Filter(records []Record, query string, fields []string) []Record {
	if strings.TrimSpace(query) == "" {
		return records
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(rec.Str(field)), needle) {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}
