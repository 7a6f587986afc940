package livechat

import (
	"github.com/tidwall/gjson"
)

// Header is the chat header. ViewSelector lists the chat views the viewer can
// switch between (top chat, live chat).
type Header struct {
	ViewSelector NonEmpty[MenuItem] `json:"viewSelector"`
}

// MenuItem is one chat view and the continuation that opens it.
type MenuItem struct {
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle"`
	Selected     bool         `json:"selected"`
	Continuation Continuation `json:"continuation"`
}

// Selected returns the currently selected view.
func (h Header) Selected() (MenuItem, bool) {
	for _, item := range h.ViewSelector.items {
		if item.Selected {
			return item, true
		}
	}
	return MenuItem{}, false
}

func decodeHeader(r gjson.Result, path string) (Header, error) {
	body, bodyPath, err := unwrap(r, path, "liveChatHeaderRenderer", "viewSelector", "sortFilterSubMenuRenderer")
	if err != nil {
		return Header{}, err
	}
	items, err := requireField(body, bodyPath, "subMenuItems", nonEmptyOf(decodeMenuItem))
	if err != nil {
		return Header{}, err
	}
	return Header{ViewSelector: items}, nil
}

func decodeMenuItem(r gjson.Result, path string) (MenuItem, error) {
	if err := expectObject(r, path); err != nil {
		return MenuItem{}, err
	}
	title, err := requireField(r, path, "title", decodeString)
	if err != nil {
		return MenuItem{}, err
	}
	subtitle, err := requireField(r, path, "subtitle", decodeString)
	if err != nil {
		return MenuItem{}, err
	}
	selected, err := requireField(r, path, "selected", decodeBool)
	if err != nil {
		return MenuItem{}, err
	}
	cont, err := requireField(r, path, "continuation", decodeContinuation)
	if err != nil {
		return MenuItem{}, err
	}
	return MenuItem{Title: title, Subtitle: subtitle, Selected: selected, Continuation: cont}, nil
}
