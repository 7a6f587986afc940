package livechat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthor = `"authorPhoto": ` + testPhoto + `, "authorName": {"simpleText": "Alice"}, "authorExternalChannelId": "UCalice"`

func textItemJSON(id string) string {
	return `{"liveChatTextMessageRenderer": {"id": "` + id + `", "timestampUsec": "1700000000000000", "message": {"runs": [{"text": "hi"}]}, ` + testAuthor + `}}`
}

func TestDecodeTextMessage(t *testing.T) {
	item, err := decodeMessageItem(parseJSON(t, textItemJSON("m1")), rootPath)
	require.NoError(t, err)
	msg, ok := item.(TextMessage)
	require.True(t, ok, "got %T", item)
	assert.Equal(t, "m1", msg.ItemID())
	assert.Equal(t, uint64(1700000000000000), msg.TimestampUsec)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), msg.Timestamp())
	assert.Equal(t, "hi", msg.Message.String())
	assert.Equal(t, "Alice", msg.Author.DisplayName())
}

func TestDecodePaidMessage(t *testing.T) {
	item, err := decodeMessageItem(parseJSON(t, `{"liveChatPaidMessageRenderer": {
		"id": "p1", "timestampUsec": "1",
		`+testAuthor+`,
		"purchaseAmountText": {"simpleText": "€2.00"},
		"headerBackgroundColor": 1, "headerTextColor": 2, "bodyBackgroundColor": 3,
		"bodyTextColor": 4, "authorNameTextColor": 5, "timestampColor": 4294967295
	}}`), rootPath)
	require.NoError(t, err)
	paid, ok := item.(PaidMessage)
	require.True(t, ok, "got %T", item)
	assert.Nil(t, paid.Message)
	assert.Equal(t, "€2.00", paid.PurchaseAmount.SimpleText)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 4294967295}, []uint32{
		paid.HeaderBackgroundColor, paid.HeaderTextColor, paid.BodyBackgroundColor,
		paid.BodyTextColor, paid.AuthorNameTextColor, paid.TimestampColor,
	})
}

func TestDecodePaidMessageMissingColor(t *testing.T) {
	_, err := decodeMessageItem(parseJSON(t, `{"liveChatPaidMessageRenderer": {
		"id": "p1", "timestampUsec": "1",
		`+testAuthor+`,
		"purchaseAmountText": {"simpleText": "€2.00"},
		"headerBackgroundColor": 1, "headerTextColor": 2, "bodyBackgroundColor": 3,
		"bodyTextColor": 4, "authorNameTextColor": 5
	}}`), rootPath)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "$.liveChatPaidMessageRenderer.timestampColor", missing.Path)
}

func TestDecodePaidSticker(t *testing.T) {
	item, err := decodeMessageItem(parseJSON(t, `{"liveChatPaidStickerRenderer": {
		"id": "s1", "timestampUsec": "2",
		`+testAuthor+`,
		"sticker": {"thumbnails": [{"url": "//sticker", "width": 40, "height": 40}]},
		"moneyChipBackgroundColor": 10, "moneyChipTextColor": 11,
		"purchaseAmountText": {"simpleText": "$1.99"},
		"stickerDisplayWidth": 40, "stickerDisplayHeight": 41,
		"backgroundColor": 12, "authorNameTextColor": 13
	}}`), rootPath)
	require.NoError(t, err)
	sticker, ok := item.(PaidSticker)
	require.True(t, ok, "got %T", item)
	assert.Equal(t, "//sticker", sticker.Sticker.First().URL)
	assert.Equal(t, uint16(40), sticker.StickerDisplayWidth)
	assert.Equal(t, uint16(41), sticker.StickerDisplayHeight)
	assert.Equal(t, uint32(10), sticker.MoneyChipBackgroundColor)
	assert.Equal(t, uint32(11), sticker.MoneyChipTextColor)
	assert.Equal(t, uint32(12), sticker.BackgroundColor)
	assert.Equal(t, uint32(13), sticker.AuthorNameTextColor)
}

func TestDecodeOtherItems(t *testing.T) {
	tests := []struct {
		name string
		json string
		want MessageItem
	}{
		{
			name: "placeholder",
			json: `{"liveChatPlaceholderItemRenderer": {"id": "ph", "timestampUsec": "5"}}`,
			want: PlaceholderItem{ItemHeader: ItemHeader{ID: "ph", TimestampUsec: 5}},
		},
		{
			name: "viewer engagement",
			json: `{"liveChatViewerEngagementMessageRenderer": {"id": "v", "timestampUsec": "6", "message": {"runs": [{"text": "Welcome"}]}}}`,
			want: ViewerEngagementMessage{
				ItemHeader: ItemHeader{ID: "v", TimestampUsec: 6},
				Message:    Message{Runs: NonEmptyOf[MessageContent](Text("Welcome"))},
			},
		},
		{
			name: "mode change",
			json: `{"liveChatModeChangeMessageRenderer": {"id": "mc", "timestampUsec": "7", "text": {"runs": [{"text": "Slow mode"}]}, "subtext": {"runs": [{"text": "30s"}]}}}`,
			want: ModeChangeMessage{
				ItemHeader: ItemHeader{ID: "mc", TimestampUsec: 7},
				Text:       Message{Runs: NonEmptyOf[MessageContent](Text("Slow mode"))},
				Subtext:    Message{Runs: NonEmptyOf[MessageContent](Text("30s"))},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMessageItem(parseJSON(t, tt.json), rootPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMembershipItem(t *testing.T) {
	item, err := decodeMessageItem(parseJSON(t, `{"liveChatMembershipItemRenderer": {
		"id": "mem", "timestampUsec": "8", `+testAuthor+`,
		"headerSubtext": {"runs": [{"text": "Welcome to "}, {"text": "the club"}]}
	}}`), rootPath)
	require.NoError(t, err)
	membership, ok := item.(MembershipItem)
	require.True(t, ok, "got %T", item)
	assert.Equal(t, "Welcome to the club", membership.HeaderSubtext.String())
	assert.Equal(t, "UCalice", membership.Author.ExternalChannelID)
}

func TestDecodeMessageItemErrors(t *testing.T) {
	_, err := decodeMessageItem(parseJSON(t, `{"liveChatDonationAnnouncementRenderer": {"id": "x"}}`), rootPath)
	var unsupported *UnsupportedVariantError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "chat item", unsupported.Kind)

	_, err = decodeMessageItem(parseJSON(t, `{
		"liveChatPlaceholderItemRenderer": {"id": "a", "timestampUsec": "1"},
		"liveChatTextMessageRenderer": {"id": "b", "timestampUsec": "1"}
	}`), rootPath)
	isAmbiguous(t, err)

	_, err = decodeMessageItem(parseJSON(t, `{"liveChatPlaceholderItemRenderer": {"id": "a", "timestampUsec": "soon"}}`), rootPath)
	var coercion *CoercionError
	require.ErrorAs(t, err, &coercion)
	assert.Equal(t, "$.liveChatPlaceholderItemRenderer.timestampUsec", coercion.Path)
}

func TestDecodeBanner(t *testing.T) {
	banner, err := decodeBanner(parseJSON(t, `{"liveChatBannerRenderer": {"contents": `+textItemJSON("b1")+`}}`), rootPath)
	require.NoError(t, err)
	assert.Equal(t, "b1", banner.ID)
	assert.Equal(t, "hi", banner.Message.String())
	assert.Equal(t, "Alice", banner.Author.DisplayName())

	_, err = decodeBanner(parseJSON(t, `{"liveChatBannerRenderer": {"contents": {"liveChatPollRenderer": {}}}}`), rootPath)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "$.liveChatBannerRenderer.contents.liveChatTextMessageRenderer", missing.Path)
}
