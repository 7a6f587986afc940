// Package livechat decodes YouTube live chat documents into a typed event
// model.
//
// The backend selects variants by which of several optional sibling keys is
// present, nests entities under fixed "...Renderer" wrapper keys and promises
// many non-empty lists. Every such rule is checked while decoding; a document
// that breaks one fails as a whole with a *DecodeError.
//
// Decoding is a pure function of its input and is safe for concurrent use.
package livechat

import (
	"github.com/tidwall/gjson"
)

// LiveChat is the chat snapshot carried by both initial and update documents.
type LiveChat struct {
	Continuations NonEmpty[Continuation] `json:"continuations"`
	// Actions is nil when the document carried no action, or only ticker and
	// tooltip actions.
	Actions      *NonEmpty[Action] `json:"actions,omitempty"`
	Participants *ParticipantsList `json:"participantsList,omitempty"`
	Header       *Header           `json:"header,omitempty"`
}

// Next returns the timeout and token of the first continuation, which is the
// one a poller should follow.
func (c LiveChat) Next() (timeoutMs uint32, token string) {
	return c.Continuations.First().TimeoutAndToken()
}

// ActionList returns the actions as a slice, empty when there are none.
func (c LiveChat) ActionList() []Action {
	if c.Actions == nil {
		return nil
	}
	return c.Actions.All()
}

// InitialDocument is the live chat part of the first page load.
// Contents is nil on pages without a chat.
type InitialDocument struct {
	Contents *LiveChat `json:"contents,omitempty"`
}

// UpdateDocument is a continuation poll response. Continuation is nil when
// the backend returned no chat contents.
type UpdateDocument struct {
	Continuation *LiveChat `json:"continuationContents,omitempty"`
}

// decodeActions drops inert actions and reports nil when nothing is left.
func decodeActions(r gjson.Result, path string) (*NonEmpty[Action], error) {
	raw, err := decodeNonEmpty(r, path, decodeAction)
	if err != nil {
		return nil, err
	}
	kept := make([]Action, 0, raw.Len())
	for _, a := range raw.items {
		if isInert(a) {
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == 0 {
		return nil, nil
	}
	return &NonEmpty[Action]{items: kept}, nil
}

func decodeLiveChat(r gjson.Result, path string) (LiveChat, error) {
	if err := expectObject(r, path); err != nil {
		return LiveChat{}, err
	}
	conts, err := requireField(r, path, "continuations", nonEmptyOf(decodeContinuation))
	if err != nil {
		return LiveChat{}, err
	}
	var acts *NonEmpty[Action]
	if v := r.Get("actions"); present(v) {
		acts, err = decodeActions(v, join(path, "actions"))
		if err != nil {
			return LiveChat{}, err
		}
	}
	participants, err := optionalField(r, path, "participantsList", decodeParticipantsList)
	if err != nil {
		return LiveChat{}, err
	}
	header, err := optionalField(r, path, "header", decodeHeader)
	if err != nil {
		return LiveChat{}, err
	}
	return LiveChat{
		Continuations: conts,
		Actions:       acts,
		Participants:  participants,
		Header:        header,
	}, nil
}

// envelope decodes {"<outer>"?: {"<inner>": LiveChat}}.
func envelope(r gjson.Result, outer, inner string) (*LiveChat, error) {
	v := r.Get(outer)
	if !present(v) {
		return nil, nil
	}
	body, bodyPath, err := unwrap(v, join(rootPath, outer), inner)
	if err != nil {
		return nil, err
	}
	chat, err := decodeLiveChat(body, bodyPath)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
