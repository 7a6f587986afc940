package livechat

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

func parse(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &SyntaxError{Reason: "document is not valid JSON"}
	}
	if !utf8.Valid(data) {
		return gjson.Result{}, &SyntaxError{Reason: "document is not valid UTF-8"}
	}
	r := gjson.ParseBytes(data)
	if err := expectObject(r, rootPath); err != nil {
		return gjson.Result{}, err
	}
	return r, nil
}

// DecodeInitial decodes the live chat data of a first page load:
// {"contents": {"liveChatRenderer": ...}}.
func DecodeInitial(data []byte) (*InitialDocument, error) {
	r, err := parse(data)
	if err != nil {
		return nil, &DecodeError{JSON: string(data), Err: err}
	}
	chat, err := envelope(r, "contents", "liveChatRenderer")
	if err != nil {
		return nil, &DecodeError{JSON: string(data), Err: err}
	}
	return &InitialDocument{Contents: chat}, nil
}

// DecodeUpdate decodes a continuation poll response:
// {"continuationContents": {"liveChatContinuation": ...}}.
func DecodeUpdate(data []byte) (*UpdateDocument, error) {
	r, err := parse(data)
	if err != nil {
		return nil, &DecodeError{JSON: string(data), Err: err}
	}
	chat, err := envelope(r, "continuationContents", "liveChatContinuation")
	if err != nil {
		return nil, &DecodeError{JSON: string(data), Err: err}
	}
	return &UpdateDocument{Continuation: chat}, nil
}
