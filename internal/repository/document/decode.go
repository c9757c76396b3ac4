package document

import (
	"fmt"
	"math"
	"time"

	"meetupticket/internal/domain"
)

func malformed(id, field, format string, args ...any) error {
	return fmt.Errorf("%w: document %q field %q: %s", domain.ErrMalformedDocument, id, field, fmt.Sprintf(format, args...))
}

func stringField(doc domain.Document, field string, required bool) (string, error) {
	v, ok := doc.Fields[field]
	if !ok || v == nil {
		if required {
			return "", malformed(doc.ID, field, "missing")
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(doc.ID, field, "want string, got %T", v)
	}
	return s, nil
}

func boolField(doc domain.Document, field string) (bool, error) {
	v, ok := doc.Fields[field]
	if !ok || v == nil {
		return false, malformed(doc.ID, field, "missing")
	}
	b, ok := v.(bool)
	if !ok {
		return false, malformed(doc.ID, field, "want bool, got %T", v)
	}
	return b, nil
}

// optionalBoolField treats a missing field as false.
func optionalBoolField(doc domain.Document, field string) (bool, error) {
	if v, ok := doc.Fields[field]; !ok || v == nil {
		return false, nil
	}
	return boolField(doc, field)
}

// toInt accepts the integer representations produced by the bindings: Go ints
// from memory, int32/int64 from BSON and integral float64 from JSON.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func intField(doc domain.Document, field string) (int, error) {
	v, ok := doc.Fields[field]
	if !ok || v == nil {
		return 0, malformed(doc.ID, field, "missing")
	}
	n, ok := toInt(v)
	if !ok {
		return 0, malformed(doc.ID, field, "want integer, got %T(%v)", v, v)
	}
	return n, nil
}

func optionalIntField(doc domain.Document, field string) (*int, error) {
	if v, ok := doc.Fields[field]; !ok || v == nil {
		return nil, nil
	}
	n, err := intField(doc, field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func timeField(doc domain.Document, field string, required bool) (*time.Time, error) {
	v, ok := doc.Fields[field]
	if !ok || v == nil {
		if required {
			return nil, malformed(doc.ID, field, "missing")
		}
		return nil, nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return nil, malformed(doc.ID, field, "invalid timestamp %q", t)
		}
		return &parsed, nil
	}
	return nil, malformed(doc.ID, field, "want timestamp, got %T", v)
}

func agendaField(doc domain.Document, field string) ([]domain.AgendaItem, error) {
	v, ok := doc.Fields[field]
	if !ok || v == nil {
		return []domain.AgendaItem{}, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, malformed(doc.ID, field, "want array, got %T", v)
	}
	items := make([]domain.AgendaItem, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, malformed(doc.ID, fmt.Sprintf("%s[%d]", field, i), "want object, got %T", entry)
		}
		item := domain.Document{ID: doc.ID, Fields: m}
		tm, err := stringField(item, "time", true)
		if err != nil {
			return nil, err
		}
		topic, err := stringField(item, "topic", true)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.AgendaItem{Time: tm, Topic: topic})
	}
	return items, nil
}
