package livechat

import (
	"time"

	"github.com/tidwall/gjson"
)

// MessageItem is one entry of the chat. Every variant embeds ItemHeader.
type MessageItem interface {
	ItemID() string
	Timestamp() time.Time
	isMessageItem()
}

// ItemHeader holds the fields shared by every chat item.
type ItemHeader struct {
	ID            string `json:"id"`
	TimestampUsec uint64 `json:"timestampUsec"`
}

func (h ItemHeader) ItemID() string { return h.ID }

// Timestamp converts TimestampUsec to a UTC time.
func (h ItemHeader) Timestamp() time.Time {
	return time.UnixMicro(int64(h.TimestampUsec)).UTC()
}

func (TextMessage) isMessageItem()             {}
func (MembershipItem) isMessageItem()          {}
func (PaidMessage) isMessageItem()             {}
func (PaidSticker) isMessageItem()             {}
func (ViewerEngagementMessage) isMessageItem() {}
func (PlaceholderItem) isMessageItem()         {}
func (ModeChangeMessage) isMessageItem()       {}

// TextMessage is a regular chat message.
type TextMessage struct {
	ItemHeader
	Message Message    `json:"message"`
	Author  AuthorInfo `json:"author"`
}

// MembershipItem announces a new or renewed channel membership.
type MembershipItem struct {
	ItemHeader
	Author        AuthorInfo `json:"author"`
	HeaderSubtext Message    `json:"headerSubtext"`
}

// PaidMessage is a Super Chat. Message is nil when the buyer wrote nothing.
type PaidMessage struct {
	ItemHeader
	Message               *Message   `json:"message,omitempty"`
	Author                AuthorInfo `json:"author"`
	PurchaseAmount        SimpleText `json:"purchaseAmountText"`
	HeaderBackgroundColor uint32     `json:"headerBackgroundColor"`
	HeaderTextColor       uint32     `json:"headerTextColor"`
	BodyBackgroundColor   uint32     `json:"bodyBackgroundColor"`
	BodyTextColor         uint32     `json:"bodyTextColor"`
	AuthorNameTextColor   uint32     `json:"authorNameTextColor"`
	TimestampColor        uint32     `json:"timestampColor"`
}

// PaidSticker is a Super Sticker.
type PaidSticker struct {
	ItemHeader
	Author                   AuthorInfo `json:"author"`
	Sticker                  Image      `json:"sticker"`
	MoneyChipBackgroundColor uint32     `json:"moneyChipBackgroundColor"`
	MoneyChipTextColor       uint32     `json:"moneyChipTextColor"`
	PurchaseAmount           SimpleText `json:"purchaseAmountText"`
	StickerDisplayWidth      uint16     `json:"stickerDisplayWidth"`
	StickerDisplayHeight     uint16     `json:"stickerDisplayHeight"`
	BackgroundColor          uint32     `json:"backgroundColor"`
	AuthorNameTextColor      uint32     `json:"authorNameTextColor"`
}

// ViewerEngagementMessage is a system notice such as the chat welcome text.
type ViewerEngagementMessage struct {
	ItemHeader
	Message Message `json:"message"`
}

// PlaceholderItem reserves a slot that a later action replaces.
type PlaceholderItem struct {
	ItemHeader
}

// ModeChangeMessage announces a chat mode change (slow mode, members only).
type ModeChangeMessage struct {
	ItemHeader
	Text    Message `json:"text"`
	Subtext Message `json:"subtext"`
}

// BannerItem is a message pinned above the chat.
type BannerItem struct {
	ItemHeader
	Message Message    `json:"message"`
	Author  AuthorInfo `json:"author"`
}

func decodeItemHeader(r gjson.Result, path string) (ItemHeader, error) {
	id, err := requireField(r, path, "id", decodeString)
	if err != nil {
		return ItemHeader{}, err
	}
	usec, err := requireField(r, path, "timestampUsec", decodeStringUint64)
	if err != nil {
		return ItemHeader{}, err
	}
	return ItemHeader{ID: id, TimestampUsec: usec}, nil
}

func decodeTextMessage(r gjson.Result, path string) (MessageItem, error) {
	item, err := decodeTextMessageBody(r, path)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func decodeTextMessageBody(r gjson.Result, path string) (TextMessage, error) {
	if err := expectObject(r, path); err != nil {
		return TextMessage{}, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return TextMessage{}, err
	}
	msg, err := requireField(r, path, "message", decodeMessage)
	if err != nil {
		return TextMessage{}, err
	}
	author, err := decodeAuthorInfo(r, path)
	if err != nil {
		return TextMessage{}, err
	}
	return TextMessage{ItemHeader: header, Message: msg, Author: author}, nil
}

func decodeMembershipItem(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	author, err := decodeAuthorInfo(r, path)
	if err != nil {
		return nil, err
	}
	subtext, err := requireField(r, path, "headerSubtext", decodeMessage)
	if err != nil {
		return nil, err
	}
	return MembershipItem{ItemHeader: header, Author: author, HeaderSubtext: subtext}, nil
}

// colors decodes a list of packed ARGB color fields in order.
func colors(r gjson.Result, path string, keys ...string) ([]uint32, error) {
	out := make([]uint32, len(keys))
	for i, key := range keys {
		c, err := requireField(r, path, key, decodeUint32)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func decodePaidMessage(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	msg, err := optionalField(r, path, "message", decodeMessage)
	if err != nil {
		return nil, err
	}
	author, err := decodeAuthorInfo(r, path)
	if err != nil {
		return nil, err
	}
	amount, err := requireField(r, path, "purchaseAmountText", decodeSimpleText)
	if err != nil {
		return nil, err
	}
	c, err := colors(r, path,
		"headerBackgroundColor",
		"headerTextColor",
		"bodyBackgroundColor",
		"bodyTextColor",
		"authorNameTextColor",
		"timestampColor",
	)
	if err != nil {
		return nil, err
	}
	return PaidMessage{
		ItemHeader:            header,
		Message:               msg,
		Author:                author,
		PurchaseAmount:        amount,
		HeaderBackgroundColor: c[0],
		HeaderTextColor:       c[1],
		BodyBackgroundColor:   c[2],
		BodyTextColor:         c[3],
		AuthorNameTextColor:   c[4],
		TimestampColor:        c[5],
	}, nil
}

func decodePaidSticker(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	author, err := decodeAuthorInfo(r, path)
	if err != nil {
		return nil, err
	}
	sticker, err := requireField(r, path, "sticker", decodeImage)
	if err != nil {
		return nil, err
	}
	chip, err := colors(r, path, "moneyChipBackgroundColor", "moneyChipTextColor")
	if err != nil {
		return nil, err
	}
	amount, err := requireField(r, path, "purchaseAmountText", decodeSimpleText)
	if err != nil {
		return nil, err
	}
	width, err := requireField(r, path, "stickerDisplayWidth", decodeUint16)
	if err != nil {
		return nil, err
	}
	height, err := requireField(r, path, "stickerDisplayHeight", decodeUint16)
	if err != nil {
		return nil, err
	}
	c, err := colors(r, path, "backgroundColor", "authorNameTextColor")
	if err != nil {
		return nil, err
	}
	return PaidSticker{
		ItemHeader:               header,
		Author:                   author,
		Sticker:                  sticker,
		MoneyChipBackgroundColor: chip[0],
		MoneyChipTextColor:       chip[1],
		PurchaseAmount:           amount,
		StickerDisplayWidth:      width,
		StickerDisplayHeight:     height,
		BackgroundColor:          c[0],
		AuthorNameTextColor:      c[1],
	}, nil
}

func decodeViewerEngagementMessage(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	msg, err := requireField(r, path, "message", decodeMessage)
	if err != nil {
		return nil, err
	}
	return ViewerEngagementMessage{ItemHeader: header, Message: msg}, nil
}

func decodePlaceholderItem(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	return PlaceholderItem{ItemHeader: header}, nil
}

func decodeModeChangeMessage(r gjson.Result, path string) (MessageItem, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	header, err := decodeItemHeader(r, path)
	if err != nil {
		return nil, err
	}
	text, err := requireField(r, path, "text", decodeMessage)
	if err != nil {
		return nil, err
	}
	subtext, err := requireField(r, path, "subtext", decodeMessage)
	if err != nil {
		return nil, err
	}
	return ModeChangeMessage{ItemHeader: header, Text: text, Subtext: subtext}, nil
}

var messageItems = resolver[MessageItem]{
	kind: "chat item",
	variants: []variant[MessageItem]{
		{key: "liveChatTextMessageRenderer", decode: decodeTextMessage},
		{key: "liveChatMembershipItemRenderer", decode: decodeMembershipItem},
		{key: "liveChatPaidMessageRenderer", decode: decodePaidMessage},
		{key: "liveChatPaidStickerRenderer", decode: decodePaidSticker},
		{key: "liveChatViewerEngagementMessageRenderer", decode: decodeViewerEngagementMessage},
		{key: "liveChatPlaceholderItemRenderer", decode: decodePlaceholderItem},
		{key: "liveChatModeChangeMessageRenderer", decode: decodeModeChangeMessage},
	},
}

func decodeMessageItem(r gjson.Result, path string) (MessageItem, error) {
	return messageItems.resolve(r, path)
}

// decodeBanner unwraps liveChatBannerRenderer.contents.liveChatTextMessageRenderer.
func decodeBanner(r gjson.Result, path string) (BannerItem, error) {
	body, bodyPath, err := unwrap(r, path, "liveChatBannerRenderer", "contents", "liveChatTextMessageRenderer")
	if err != nil {
		return BannerItem{}, err
	}
	msg, err := decodeTextMessageBody(body, bodyPath)
	if err != nil {
		return BannerItem{}, err
	}
	return BannerItem{ItemHeader: msg.ItemHeader, Message: msg.Message, Author: msg.Author}, nil
}
