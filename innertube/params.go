package innertube

import (
	"fmt"

	"github.com/google/go-querystring/query"
)

const liveChatEndpoint = "https://www.youtube.com/youtubei/v1/live_chat/get_live_chat"

// Params is the get_live_chat request body.
type Params struct {
	Context       Context       `json:"context"`
	Continuation  string        `json:"continuation"`
	WebClientInfo WebClientInfo `json:"webClientInfo"`
}

// WebClientInfo reports the state of the page.
type WebClientInfo struct {
	IsDocumentHidden bool `json:"isDocumentHidden"`
}

// New returns params for ctx with an empty continuation and a visible
// document.
func New(ctx Context) *Params {
	return &Params{
		Context:       ctx,
		WebClientInfo: WebClientInfo{IsDocumentHidden: false},
	}
}

// SetContinuation sets the token taken from the previous response.
func (p *Params) SetContinuation(token string) {
	p.Continuation = token
}

// SetEventID sets the client screen nonce of the context.
func (p *Params) SetEventID(id string) {
	p.Context.SetEventID(id)
}

// SetReferer sets the embedding page of the context.
func (p *Params) SetReferer(referer string) {
	p.Context.SetReferer(referer)
}

// Body serializes the params as the JSON request body.
func (p *Params) Body() ([]byte, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}
	return body, nil
}

// EndpointQuery is the query string of the get_live_chat endpoint.
type EndpointQuery struct {
	Key         string `url:"key"`
	PrettyPrint bool   `url:"prettyPrint"`
}

// GetLiveChatURL returns the endpoint URL with q encoded as its query string.
func GetLiveChatURL(q EndpointQuery) (string, error) {
	values, err := query.Values(q)
	if err != nil {
		return "", fmt.Errorf("failed to encode query: %w", err)
	}
	return liveChatEndpoint + "?" + values.Encode(), nil
}
