package livechat

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

const rootPath = "$"

// decodeFunc decodes the value found at path.
type decodeFunc[T any] func(r gjson.Result, path string) (T, error)

// present reports whether a key exists with a non-null value.
func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func join(path, key string) string {
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func typeName(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "bool"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	return "unknown"
}

// expectObject fails unless r is an object whose keys are all distinct.
func expectObject(r gjson.Result, path string) error {
	if !r.IsObject() {
		return &TypeError{Path: path, Want: "object", Got: typeName(r)}
	}
	var dup error
	seen := make(map[string]struct{})
	r.ForEach(func(key, _ gjson.Result) bool {
		if _, ok := seen[key.Str]; ok {
			dup = &DuplicateFieldError{Path: join(path, key.Str)}
			return false
		}
		seen[key.Str] = struct{}{}
		return true
	})
	return dup
}

// required looks up key under r and fails when it is absent.
func required(r gjson.Result, path, key string) (gjson.Result, string, error) {
	p := join(path, key)
	v := r.Get(key)
	if !v.Exists() {
		return v, p, &MissingFieldError{Path: p}
	}
	return v, p, nil
}

// unwrap descends through fixed wrapper keys such as
// "liveChatBannerRenderer" and returns the innermost object.
func unwrap(r gjson.Result, path string, keys ...string) (gjson.Result, string, error) {
	for _, key := range keys {
		if err := expectObject(r, path); err != nil {
			return r, path, err
		}
		var err error
		r, path, err = required(r, path, key)
		if err != nil {
			return r, path, err
		}
	}
	return r, path, expectObject(r, path)
}

func requireField[T any](r gjson.Result, path, key string, decode decodeFunc[T]) (T, error) {
	v, p, err := required(r, path, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode(v, p)
}

// optionalField decodes key when it is present and returns nil otherwise.
func optionalField[T any](r gjson.Result, path, key string, decode decodeFunc[T]) (*T, error) {
	v := r.Get(key)
	if !present(v) {
		return nil, nil
	}
	out, err := decode(v, join(path, key))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func decodeString(r gjson.Result, path string) (string, error) {
	if r.Type != gjson.String {
		return "", &TypeError{Path: path, Want: "string", Got: typeName(r)}
	}
	return r.Str, nil
}

func decodeBool(r gjson.Result, path string) (bool, error) {
	if r.Type != gjson.True && r.Type != gjson.False {
		return false, &TypeError{Path: path, Want: "bool", Got: typeName(r)}
	}
	return r.Bool(), nil
}

func decodeUint(r gjson.Result, path string, bits int) (uint64, error) {
	want := fmt.Sprintf("uint%d", bits)
	if r.Type != gjson.Number {
		return 0, &TypeError{Path: path, Want: want, Got: typeName(r)}
	}
	n, err := strconv.ParseUint(r.Raw, 10, bits)
	if err != nil {
		return 0, &TypeError{Path: path, Want: want, Got: "number " + r.Raw}
	}
	return n, nil
}

func decodeUint16(r gjson.Result, path string) (uint16, error) {
	n, err := decodeUint(r, path, 16)
	return uint16(n), err
}

func decodeUint32(r gjson.Result, path string) (uint32, error) {
	n, err := decodeUint(r, path, 32)
	return uint32(n), err
}

// decodeStringUint64 reads an unsigned integer transmitted as a JSON string,
// as the backend does for every timestampUsec.
func decodeStringUint64(r gjson.Result, path string) (uint64, error) {
	s, err := decodeString(r, path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &CoercionError{Path: path, Raw: s, Type: "uint64", Err: err}
	}
	return n, nil
}

// decodeNonEmpty decodes a JSON array element-wise and rejects empty arrays.
func decodeNonEmpty[T any](r gjson.Result, path string, decode decodeFunc[T]) (NonEmpty[T], error) {
	if !r.IsArray() {
		return NonEmpty[T]{}, &TypeError{Path: path, Want: "array", Got: typeName(r)}
	}
	elems := r.Array()
	if len(elems) == 0 {
		return NonEmpty[T]{}, &EmptySequenceError{Path: path}
	}
	items := make([]T, 0, len(elems))
	for i, elem := range elems {
		item, err := decode(elem, index(path, i))
		if err != nil {
			return NonEmpty[T]{}, err
		}
		items = append(items, item)
	}
	return NonEmpty[T]{items: items}, nil
}

// nonEmptyOf adapts an element decoder into a decoder of non-empty arrays of
// that element.
func nonEmptyOf[T any](decode decodeFunc[T]) decodeFunc[NonEmpty[T]] {
	return func(r gjson.Result, path string) (NonEmpty[T], error) {
		return decodeNonEmpty(r, path, decode)
	}
}
