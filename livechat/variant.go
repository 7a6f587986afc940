package livechat

import (
	"github.com/tidwall/gjson"
)

// variant is one of several mutually exclusive keys of an object. The key
// being present selects the variant and its value is handed to decode.
type variant[T any] struct {
	key    string
	decode decodeFunc[T]
}

// resolver picks the single variant present in an object. When no variant is
// present, none decides the outcome; a nil none rejects the object with an
// UnsupportedVariantError.
type resolver[T any] struct {
	kind     string
	variants []variant[T]
	none     func(path string) (T, error)
}

func (s resolver[T]) keys() []string {
	keys := make([]string, len(s.variants))
	for i, v := range s.variants {
		keys[i] = v.key
	}
	return keys
}

func (s resolver[T]) resolve(r gjson.Result, path string) (T, error) {
	var zero T
	if err := expectObject(r, path); err != nil {
		return zero, err
	}

	var found []variant[T]
	for _, v := range s.variants {
		if present(r.Get(v.key)) {
			found = append(found, v)
		}
	}

	switch len(found) {
	case 0:
		if s.none != nil {
			return s.none(path)
		}
		return zero, &UnsupportedVariantError{Path: path, Kind: s.kind, Known: s.keys()}
	case 1:
		v := found[0]
		return v.decode(r.Get(v.key), join(path, v.key))
	default:
		keys := make([]string, len(found))
		for i, v := range found {
			keys[i] = v.key
		}
		return zero, &AmbiguousVariantError{Path: path, Kind: s.kind, Keys: keys}
	}
}
