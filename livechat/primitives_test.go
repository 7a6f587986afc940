package livechat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func parseJSON(t *testing.T, s string) gjson.Result {
	t.Helper()
	require.True(t, gjson.Valid(s), "invalid test json: %s", s)
	return gjson.Parse(s)
}

func TestDecodeStringUint64(t *testing.T) {
	r := parseJSON(t, `{"timestampUsec": "12345"}`)
	n, err := requireField(r, rootPath, "timestampUsec", decodeStringUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), n)

	r = parseJSON(t, `{"timestampUsec": "18446744073709551615"}`)
	n, err = requireField(r, rootPath, "timestampUsec", decodeStringUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), n)
}

func TestDecodeStringUint64Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		dest any
	}{
		{"not a number", `{"timestampUsec": "abc"}`, new(*CoercionError)},
		{"negative", `{"timestampUsec": "-1"}`, new(*CoercionError)},
		{"overflow", `{"timestampUsec": "18446744073709551616"}`, new(*CoercionError)},
		{"empty", `{"timestampUsec": ""}`, new(*CoercionError)},
		{"bare number", `{"timestampUsec": 12345}`, new(*TypeError)},
		{"missing", `{}`, new(*MissingFieldError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := requireField(parseJSON(t, tt.json), rootPath, "timestampUsec", decodeStringUint64)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.dest), "unexpected error %T: %v", err, err)
		})
	}
}

func TestCoercionErrorCarriesRawValue(t *testing.T) {
	_, err := requireField(parseJSON(t, `{"timestampUsec": "abc"}`), rootPath, "timestampUsec", decodeStringUint64)
	var coercion *CoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, "abc", coercion.Raw)
	assert.Equal(t, "uint64", coercion.Type)
	assert.Equal(t, "$.timestampUsec", coercion.Path)
}

func TestDecodeUintRange(t *testing.T) {
	r := parseJSON(t, `{"ok": 65535, "big": 65536, "neg": -1, "frac": 1.5, "str": "1"}`)

	n, err := requireField(r, rootPath, "ok", decodeUint16)
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), n)

	for _, key := range []string{"big", "neg", "frac", "str"} {
		_, err := requireField(r, rootPath, key, decodeUint16)
		var typeErr *TypeError
		assert.ErrorAs(t, err, &typeErr, key)
	}

	c, err := requireField(parseJSON(t, `{"c": 4294967295}`), rootPath, "c", decodeUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), c)
}

func TestRequiredAndOptional(t *testing.T) {
	r := parseJSON(t, `{"a": "x", "n": null}`)

	_, err := requireField(r, rootPath, "b", decodeString)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "$.b", missing.Path)

	_, err = requireField(r, rootPath, "n", decodeString)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "null", typeErr.Got)

	v, err := optionalField(r, rootPath, "n", decodeString)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = optionalField(r, rootPath, "absent", decodeString)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = optionalField(r, rootPath, "a", decodeString)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "x", *v)
}

func TestExpectObjectRejectsDuplicateKeys(t *testing.T) {
	require.NoError(t, expectObject(parseJSON(t, `{"text": "a", "emoji": {}}`), rootPath))

	err := expectObject(parseJSON(t, `{"text": "a", "text": "b"}`), rootPath)
	var dup *DuplicateFieldError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "$.text", dup.Path)

	_, err = decodeRun(parseJSON(t, `{"text": "a", "emoji": {}, "text": "b"}`), "$.runs[0]")
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "$.runs[0].text", dup.Path)
}

func TestUnwrap(t *testing.T) {
	r := parseJSON(t, `{"outerRenderer": {"contents": {"innerRenderer": {"id": "x"}}}}`)

	body, path, err := unwrap(r, rootPath, "outerRenderer", "contents", "innerRenderer")
	require.NoError(t, err)
	assert.Equal(t, "$.outerRenderer.contents.innerRenderer", path)
	assert.Equal(t, "x", body.Get("id").String())

	_, _, err = unwrap(r, rootPath, "outerRenderer", "other")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "$.outerRenderer.other", missing.Path)

	_, _, err = unwrap(parseJSON(t, `{"outerRenderer": []}`), rootPath, "outerRenderer")
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestDecodeNonEmpty(t *testing.T) {
	r := parseJSON(t, `{"list": ["a", "b"], "empty": [], "obj": {}, "bad": ["a", 1]}`)

	list, err := requireField(r, rootPath, "list", nonEmptyOf(decodeString))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list.All())

	_, err = requireField(r, rootPath, "empty", nonEmptyOf(decodeString))
	var empty *EmptySequenceError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, "$.empty", empty.Path)
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = requireField(r, rootPath, "obj", nonEmptyOf(decodeString))
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "array", typeErr.Want)

	_, err = requireField(r, rootPath, "bad", nonEmptyOf(decodeString))
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "$.bad[1]", typeErr.Path)
}
