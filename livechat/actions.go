package livechat

import (
	"github.com/tidwall/gjson"
)

// Action is one mutation of the chat view: AddBanner, AddChatItem,
// MarkItemDeleted, MarkAuthorItemsDeleted or ReplaceChatItem.
type Action interface {
	isAction()
}

// AddBanner pins a banner above the chat.
type AddBanner struct {
	Banner BannerItem `json:"banner"`
}

// AddChatItem appends an item to the chat.
type AddChatItem struct {
	Item MessageItem `json:"item"`
}

// MarkItemDeleted retracts a single item.
type MarkItemDeleted struct {
	DeletedStateMessage Message `json:"deletedStateMessage"`
	TargetItemID        string  `json:"targetItemId"`
}

// MarkAuthorItemsDeleted retracts every item of one author.
type MarkAuthorItemsDeleted struct {
	DeletedStateMessage Message `json:"deletedStateMessage"`
	ExternalChannelID   string  `json:"externalChannelId"`
}

// ReplaceChatItem swaps an existing item, usually a placeholder, for another.
type ReplaceChatItem struct {
	TargetItemID    string      `json:"targetItemId"`
	ReplacementItem MessageItem `json:"replacementItem"`
}

func (AddBanner) isAction()              {}
func (AddChatItem) isAction()            {}
func (MarkItemDeleted) isAction()        {}
func (MarkAuthorItemsDeleted) isAction() {}
func (ReplaceChatItem) isAction()        {}

// inert is what recognized action kinds without payload (ticker items,
// tooltips) decode to. The aggregate drops it.
type inert struct{}

func (inert) isAction() {}

var noAction Action = inert{}

func isInert(a Action) bool {
	_, ok := a.(inert)
	return ok
}

func decodeInert(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	return noAction, nil
}

func decodeAddBanner(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	banner, err := requireField(r, path, "bannerRenderer", decodeBanner)
	if err != nil {
		return nil, err
	}
	return AddBanner{Banner: banner}, nil
}

func decodeAddChatItem(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	item, err := requireField(r, path, "item", decodeMessageItem)
	if err != nil {
		return nil, err
	}
	return AddChatItem{Item: item}, nil
}

func decodeMarkItemDeleted(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	msg, err := requireField(r, path, "deletedStateMessage", decodeMessage)
	if err != nil {
		return nil, err
	}
	target, err := requireField(r, path, "targetItemId", decodeString)
	if err != nil {
		return nil, err
	}
	return MarkItemDeleted{DeletedStateMessage: msg, TargetItemID: target}, nil
}

func decodeMarkAuthorItemsDeleted(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	msg, err := requireField(r, path, "deletedStateMessage", decodeMessage)
	if err != nil {
		return nil, err
	}
	channelID, err := requireField(r, path, "externalChannelId", decodeString)
	if err != nil {
		return nil, err
	}
	return MarkAuthorItemsDeleted{DeletedStateMessage: msg, ExternalChannelID: channelID}, nil
}

func decodeReplaceChatItem(r gjson.Result, path string) (Action, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	target, err := requireField(r, path, "targetItemId", decodeString)
	if err != nil {
		return nil, err
	}
	item, err := requireField(r, path, "replacementItem", decodeMessageItem)
	if err != nil {
		return nil, err
	}
	return ReplaceChatItem{TargetItemID: target, ReplacementItem: item}, nil
}

// actionKinds dispatches an action envelope. An envelope with none of these keys
// is rejected; the ticker and tooltip keys are accepted but yield noAction.
var actionKinds = resolver[Action]{
	kind: "action",
	variants: []variant[Action]{
		{key: "addBannerToLiveChatCommand", decode: decodeAddBanner},
		{key: "addLiveChatTickerItemAction", decode: decodeInert},
		{key: "addChatItemAction", decode: decodeAddChatItem},
		{key: "markChatItemAsDeletedAction", decode: decodeMarkItemDeleted},
		{key: "markChatItemsByAuthorAsDeletedAction", decode: decodeMarkAuthorItemsDeleted},
		{key: "replaceChatItemAction", decode: decodeReplaceChatItem},
		{key: "showLiveChatTooltipCommand", decode: decodeInert},
	},
}

func decodeAction(r gjson.Result, path string) (Action, error) {
	return actionKinds.resolve(r, path)
}
