package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/vietddude/tigscan/internal/schema"
)

// EnvelopeKind tells how a list endpoint wraps its items.
type EnvelopeKind int

const (
	// EnvelopeTuple is [items, total].
	EnvelopeTuple EnvelopeKind = iota
	// EnvelopeObject is {<key>: items, total}.
	EnvelopeObject
	// EnvelopeArray is a bare items array; total is its length.
	EnvelopeArray
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeTuple:
		return "tuple"
	case EnvelopeObject:
		return "object"
	case EnvelopeArray:
		return "array"
	default:
		return fmt.Sprintf("envelope(%d)", int(k))
	}
}

// Envelope describes the list wrapping of one endpoint.
type Envelope struct {
	Kind EnvelopeKind
	Key  string // items key of an object envelope
}

var (
	TupleEnvelope = Envelope{Kind: EnvelopeTuple}
	ArrayEnvelope = Envelope{Kind: EnvelopeArray}
)

// ObjectEnvelope returns an object envelope keyed by key ("data" if empty).
func ObjectEnvelope(key string) Envelope {
	if key == "" {
		key = "data"
	}
	return Envelope{Kind: EnvelopeObject, Key: key}
}

// Unwrap splits a raw list response into its raw items array and total.
func (e Envelope) Unwrap(raw []byte) (json.RawMessage, int, error) {
	switch e.Kind {
	case EnvelopeTuple:
		if err := schema.Validate(schema.TupleEnvelope(), raw); err != nil {
			return nil, 0, err
		}
		var parts []json.RawMessage
		if err := json.Unmarshal(raw, &parts); err != nil {
			return nil, 0, schema.Invalid("page", "", "[items, total]", err.Error())
		}
		var total int
		if err := json.Unmarshal(parts[1], &total); err != nil {
			return nil, 0, schema.Invalid("page", "[1]", "integer", err.Error())
		}
		return parts[0], total, nil

	case EnvelopeObject:
		if err := schema.Validate(schema.ObjectEnvelope(e.Key), raw); err != nil {
			return nil, 0, err
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, 0, schema.Invalid("page", "", "object", err.Error())
		}
		var total int
		if err := json.Unmarshal(obj["total"], &total); err != nil {
			return nil, 0, schema.Invalid("page", "total", "integer", err.Error())
		}
		return obj[e.Key], total, nil

	case EnvelopeArray:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, schema.Invalid("page", "", "array", string(kindOfRaw(raw)))
		}
		return raw, len(items), nil
	}
	return nil, 0, fmt.Errorf("unknown envelope %v", e.Kind)
}

func kindOfRaw(raw []byte) schema.Kind {
	v, err := schema.Decode(raw)
	if err != nil {
		return schema.KindUnknown
	}
	return schema.KindOf(v)
}
