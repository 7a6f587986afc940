package livechat

import (
	"github.com/tidwall/gjson"
)

// Continuation tells the poller which token to send next and how long to
// wait before doing so.
type Continuation interface {
	// TimeoutAndToken collapses the continuation. Reload continuations have no
	// timeout and report 0.
	TimeoutAndToken() (timeoutMs uint32, token string)
}

// TimedContinuation is the regular polling continuation.
type TimedContinuation struct {
	TimeoutMs uint32 `json:"timeoutMs"`
	Token     string `json:"continuation"`
}

// InvalidationContinuation is sent when the client is expected to be pushed
// updates but should still poll after the timeout.
type InvalidationContinuation struct {
	TimeoutMs uint32 `json:"timeoutMs"`
	Token     string `json:"continuation"`
}

// ReloadContinuation asks for a full reload, for example after switching
// between top chat and live chat.
type ReloadContinuation struct {
	Token string `json:"continuation"`
}

func (c TimedContinuation) TimeoutAndToken() (uint32, string)        { return c.TimeoutMs, c.Token }
func (c InvalidationContinuation) TimeoutAndToken() (uint32, string) { return c.TimeoutMs, c.Token }
func (c ReloadContinuation) TimeoutAndToken() (uint32, string)       { return 0, c.Token }

func decodeTimeoutAndToken(r gjson.Result, path string) (uint32, string, error) {
	if err := expectObject(r, path); err != nil {
		return 0, "", err
	}
	timeout, err := requireField(r, path, "timeoutMs", decodeUint32)
	if err != nil {
		return 0, "", err
	}
	token, err := requireField(r, path, "continuation", decodeString)
	if err != nil {
		return 0, "", err
	}
	return timeout, token, nil
}

func decodeTimedContinuation(r gjson.Result, path string) (Continuation, error) {
	timeout, token, err := decodeTimeoutAndToken(r, path)
	if err != nil {
		return nil, err
	}
	return TimedContinuation{TimeoutMs: timeout, Token: token}, nil
}

func decodeInvalidationContinuation(r gjson.Result, path string) (Continuation, error) {
	timeout, token, err := decodeTimeoutAndToken(r, path)
	if err != nil {
		return nil, err
	}
	return InvalidationContinuation{TimeoutMs: timeout, Token: token}, nil
}

func decodeReloadContinuation(r gjson.Result, path string) (Continuation, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	token, err := requireField(r, path, "continuation", decodeString)
	if err != nil {
		return nil, err
	}
	return ReloadContinuation{Token: token}, nil
}

var continuationKinds = resolver[Continuation]{
	kind: "continuation",
	variants: []variant[Continuation]{
		{key: "timedContinuationData", decode: decodeTimedContinuation},
		{key: "invalidationContinuationData", decode: decodeInvalidationContinuation},
		{key: "reloadContinuationData", decode: decodeReloadContinuation},
	},
}

func decodeContinuation(r gjson.Result, path string) (Continuation, error) {
	return continuationKinds.resolve(r, path)
}
