package message

import (
	"strings"
	"time"

	"github.com/john/ytchat/livechat"
)

const platform = "youtube"

// Record kinds
const (
	KindText          = "text"
	KindMembership    = "membership"
	KindPaid          = "paid"
	KindSticker       = "sticker"
	KindEngagement    = "engagement"
	KindPlaceholder   = "placeholder"
	KindModeChange    = "mode_change"
	KindBanner        = "banner"
	KindDeleted       = "deleted"
	KindAuthorDeleted = "author_deleted"
)

// Message is one flattened chat event, written as a JSONL line
type Message struct {
	Platform  string `json:"platform"`            // Always "youtube"
	Kind      string `json:"kind"`                // One of the Kind* constants
	ID        string `json:"id,omitempty"`        // Chat item id
	Timestamp string `json:"timestamp,omitempty"` // Item timestamp in RFC3339 format (UTC)
	Channel   string `json:"channel"`             // Channel the chat belongs to
	Username  string `json:"username,omitempty"`  // Author display name
	UserID    string `json:"user_id,omitempty"`   // Author external channel id
	Message   string `json:"message,omitempty"`   // Flattened message text
	Amount    string `json:"amount,omitempty"`    // Purchase amount of paid items
	Badges    string `json:"badges,omitempty"`    // Comma-separated list of badges
	Target    string `json:"target,omitempty"`    // Item or channel id a deletion or replacement applies to
}

// FromActions flattens decoded chat actions into records, in order.
func FromActions(channel string, actions []livechat.Action) []Message {
	out := make([]Message, 0, len(actions))
	for _, action := range actions {
		switch a := action.(type) {
		case livechat.AddChatItem:
			out = append(out, fromItem(channel, a.Item))
		case livechat.ReplaceChatItem:
			msg := fromItem(channel, a.ReplacementItem)
			msg.Target = a.TargetItemID
			out = append(out, msg)
		case livechat.AddBanner:
			msg := base(channel, KindBanner, a.Banner.ItemHeader)
			withAuthor(&msg, a.Banner.Author)
			msg.Message = a.Banner.Message.String()
			out = append(out, msg)
		case livechat.MarkItemDeleted:
			out = append(out, Message{
				Platform: platform,
				Kind:     KindDeleted,
				Channel:  channel,
				Message:  a.DeletedStateMessage.String(),
				Target:   a.TargetItemID,
			})
		case livechat.MarkAuthorItemsDeleted:
			out = append(out, Message{
				Platform: platform,
				Kind:     KindAuthorDeleted,
				Channel:  channel,
				Message:  a.DeletedStateMessage.String(),
				Target:   a.ExternalChannelID,
			})
		}
	}
	return out
}

func fromItem(channel string, item livechat.MessageItem) Message {
	switch it := item.(type) {
	case livechat.TextMessage:
		msg := base(channel, KindText, it.ItemHeader)
		withAuthor(&msg, it.Author)
		msg.Message = it.Message.String()
		return msg
	case livechat.MembershipItem:
		msg := base(channel, KindMembership, it.ItemHeader)
		withAuthor(&msg, it.Author)
		msg.Message = it.HeaderSubtext.String()
		return msg
	case livechat.PaidMessage:
		msg := base(channel, KindPaid, it.ItemHeader)
		withAuthor(&msg, it.Author)
		if it.Message != nil {
			msg.Message = it.Message.String()
		}
		msg.Amount = it.PurchaseAmount.SimpleText
		return msg
	case livechat.PaidSticker:
		msg := base(channel, KindSticker, it.ItemHeader)
		withAuthor(&msg, it.Author)
		msg.Amount = it.PurchaseAmount.SimpleText
		return msg
	case livechat.ViewerEngagementMessage:
		msg := base(channel, KindEngagement, it.ItemHeader)
		msg.Message = it.Message.String()
		return msg
	case livechat.ModeChangeMessage:
		msg := base(channel, KindModeChange, it.ItemHeader)
		msg.Message = it.Text.String()
		return msg
	case livechat.PlaceholderItem:
		return base(channel, KindPlaceholder, it.ItemHeader)
	}
	return Message{Platform: platform, Channel: channel, ID: item.ItemID()}
}

func base(channel, kind string, h livechat.ItemHeader) Message {
	return Message{
		Platform:  platform,
		Kind:      kind,
		ID:        h.ID,
		Timestamp: h.Timestamp().Format(time.RFC3339),
		Channel:   channel,
	}
}

func withAuthor(msg *Message, author livechat.AuthorInfo) {
	msg.Username = author.DisplayName()
	msg.UserID = author.ExternalChannelID
	msg.Badges = badges(author)
}

// badges renders icon badges by lowercased icon type and custom badges by
// tooltip, e.g. "icon:owner,custom:Member (1 year)".
func badges(author livechat.AuthorInfo) string {
	if author.Badges == nil {
		return ""
	}
	list := author.Badges.All()
	parts := make([]string, 0, len(list))
	for _, b := range list {
		switch t := b.Type.(type) {
		case livechat.IconBadge:
			parts = append(parts, "icon:"+strings.ToLower(string(t.Icon)))
		case livechat.CustomBadge:
			parts = append(parts, "custom:"+b.Tooltip)
		}
	}
	return strings.Join(parts, ",")
}
