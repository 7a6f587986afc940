// Package innertube builds the request body and URL of the get_live_chat
// endpoint that the livechat package decodes responses of.
package innertube

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Context identifies the client to the backend. It is sent with every poll.
type Context struct {
	Client            ClientParams   `json:"client"`
	Request           RequestParams  `json:"request"`
	User              UserParams     `json:"user"`
	ClientScreenNonce *string        `json:"clientScreenNonce,omitempty"`
	ClickTracking     *ClickTracking `json:"clickTracking,omitempty"`
	AdSignalsInfo     AdSignalsInfo  `json:"adSignalsInfo"`
}

// ClientParams describes the web client and its screen.
type ClientParams struct {
	HL                 string         `json:"hl"`
	GL                 string         `json:"gl"`
	VisitorData        string         `json:"visitorData"`
	UserAgent          string         `json:"userAgent"`
	ClientName         string         `json:"clientName"`
	ClientVersion      string         `json:"clientVersion"`
	OSName             string         `json:"osName"`
	OSVersion          string         `json:"osVersion"`
	BrowserName        string         `json:"browserName"`
	BrowserVersion     string         `json:"browserVersion"`
	ScreenWidthPoints  uint16         `json:"screenWidthPoints"`
	ScreenHeightPoints uint16         `json:"screenHeightPoints"`
	ScreenPixelDensity uint16         `json:"screenPixelDensity"`
	ScreenDensityFloat float32        `json:"screenDensityFloat"`
	UTCOffsetMinutes   int16          `json:"utcOffsetMinutes"`
	UserInterfaceTheme string         `json:"userInterfaceTheme"`
	ConnectionType     *string        `json:"connectionType,omitempty"`
	MainAppWebInfo     MainAppWebInfo `json:"mainAppWebInfo"`
	TimeZone           string         `json:"timeZone"`
}

// RequestParams carries the session of the request.
type RequestParams struct {
	SessionID               string   `json:"sessionId"`
	InternalExperimentFlags []string `json:"internalExperimentFlags"`
	ConsistencyTokenJars    []string `json:"consistencyTokenJars"`
}

// UserParams is sent empty for signed-out clients.
type UserParams struct{}

// ClickTracking holds the tracking params of the click that opened the chat.
type ClickTracking struct {
	ClickTrackingParams string `json:"clickTrackingParams"`
}

// MainAppWebInfo names the page the chat frame is embedded in.
type MainAppWebInfo struct {
	GraftURL string `json:"graftUrl"`
}

// AdSignalsInfo is a list of key/value pairs the web client reports along
// with each request.
type AdSignalsInfo struct {
	Params []CustomParam `json:"params"`
}

// CustomParam is one ad signal.
type CustomParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Add appends a key/value pair.
func (a *AdSignalsInfo) Add(key, value string) {
	a.Params = append(a.Params, CustomParam{Key: key, Value: value})
}

// Clear removes every pair.
func (a *AdSignalsInfo) Clear() {
	a.Params = []CustomParam{}
}

// DefaultContext returns a context populated the way a desktop web client
// populates it. Identity fields (visitor data, session id) are empty.
func DefaultContext() Context {
	return Context{
		Client: ClientParams{
			HL:                 "en",
			GL:                 "US",
			UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36,gzip(gfe)",
			ClientName:         "WEB",
			ClientVersion:      "2.20231214.06.00",
			OSName:             "Windows",
			OSVersion:          "10.0",
			BrowserName:        "Chrome",
			BrowserVersion:     "120.0.0.0",
			ScreenWidthPoints:  401,
			ScreenHeightPoints: 566,
			ScreenPixelDensity: 1,
			ScreenDensityFloat: 1.0,
			UTCOffsetMinutes:   0,
			UserInterfaceTheme: "USER_INTERFACE_THEME_LIGHT",
			TimeZone:           "Europe/London",
		},
		Request: RequestParams{
			InternalExperimentFlags: []string{},
			ConsistencyTokenJars:    []string{},
		},
		AdSignalsInfo: AdSignalsInfo{Params: []CustomParam{}},
	}
}

// requiredContextFields must be present in a parsed context document. The
// remaining fields fall back to DefaultContext.
var requiredContextFields = []string{
	"client.hl",
	"client.gl",
	"client.visitorData",
	"client.userAgent",
	"client.clientName",
	"client.clientVersion",
	"client.osName",
	"client.osVersion",
	"client.browserName",
	"client.browserVersion",
	"request.sessionId",
}

// ParseContext decodes a context document, typically the INNERTUBE_CONTEXT
// object scraped from the watch page, on top of DefaultContext.
func ParseContext(data []byte) (Context, error) {
	if !gjson.ValidBytes(data) {
		return Context{}, fmt.Errorf("context is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	for _, field := range requiredContextFields {
		if !doc.Get(field).Exists() {
			return Context{}, fmt.Errorf("context is missing %q", field)
		}
	}
	ctx := DefaultContext()
	if err := json.Unmarshal(data, &ctx); err != nil {
		return Context{}, fmt.Errorf("failed to decode context: %w", err)
	}
	return ctx, nil
}

// SetEventID sets the client screen nonce. An empty id removes it.
func (c *Context) SetEventID(id string) {
	if id == "" {
		c.ClientScreenNonce = nil
		return
	}
	c.ClientScreenNonce = &id
}

// SetReferer sets the URL of the embedding page.
func (c *Context) SetReferer(referer string) {
	c.Client.MainAppWebInfo.GraftURL = referer
}

// SetConnectionType sets the reported connection type. An empty value
// removes it.
func (c *Context) SetConnectionType(connectionType string) {
	if connectionType == "" {
		c.Client.ConnectionType = nil
		return
	}
	c.Client.ConnectionType = &connectionType
}

// SetClickTracking sets the click tracking params. An empty value removes
// them.
func (c *Context) SetClickTracking(params string) {
	if params == "" {
		c.ClickTracking = nil
		return
	}
	c.ClickTracking = &ClickTracking{ClickTrackingParams: params}
}

// AdSignals returns the ad signals for in-place edits.
func (c *Context) AdSignals() *AdSignalsInfo {
	return &c.AdSignalsInfo
}

// ClientParams returns the client description.
func (c Context) ClientParams() ClientParams {
	return c.Client
}

// VisitorData returns the visitor identifier.
func (c Context) VisitorData() string {
	return c.Client.VisitorData
}

// Width returns the screen width in points.
func (c Context) Width() uint16 {
	return c.Client.ScreenWidthPoints
}

// Height returns the screen height in points.
func (c Context) Height() uint16 {
	return c.Client.ScreenHeightPoints
}
