package livechat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhoto = `{"thumbnails": [{"url": "https://yt4.ggpht.com/a=s32", "width": 32, "height": 32}, {"url": "https://yt4.ggpht.com/a=s64", "width": 64, "height": 64}]}`

func TestDecodeAuthorBadge(t *testing.T) {
	badge, err := decodeAuthorBadge(parseJSON(t, `{"liveChatAuthorBadgeRenderer": {"icon": {"iconType": "VERIFIED"}, "tooltip": "Verified"}}`), rootPath)
	require.NoError(t, err)
	assert.Equal(t, AuthorBadge{Type: IconBadge{Icon: IconVerified}, Tooltip: "Verified"}, badge)

	badge, err = decodeAuthorBadge(parseJSON(t, `{"liveChatAuthorBadgeRenderer": {
		"customThumbnail": {"thumbnails": [{"url": "https://yt3.ggpht.com/m=s16"}, {"url": "https://yt3.ggpht.com/m=s32"}]},
		"tooltip": "Member (1 year)"
	}}`), rootPath)
	require.NoError(t, err)
	custom, ok := badge.Type.(CustomBadge)
	require.True(t, ok)
	assert.Equal(t, "https://yt3.ggpht.com/m=s16", custom.Image.First().URL)
	assert.Equal(t, "Member (1 year)", badge.Tooltip)
}

func TestDecodeAuthorBadgeErrors(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		check func(t *testing.T, err error)
	}{
		{"no renderer", `{"icon": {"iconType": "OWNER"}, "tooltip": "Owner"}`, isMissingField},
		{"no tooltip", `{"liveChatAuthorBadgeRenderer": {"icon": {"iconType": "OWNER"}}}`, isMissingField},
		{"both kinds", `{"liveChatAuthorBadgeRenderer": {"icon": {"iconType": "OWNER"}, "customThumbnail": {"thumbnails": [{"url": "u"}]}, "tooltip": "x"}}`, isAmbiguous},
		{"empty custom thumbnails", `{"liveChatAuthorBadgeRenderer": {"customThumbnail": {"thumbnails": []}, "tooltip": "x"}}`, isEmptySequence},
		{"unknown icon", `{"liveChatAuthorBadgeRenderer": {"icon": {"iconType": "STAR"}, "tooltip": "x"}}`, func(t *testing.T, err error) {
			var target *UnknownValueError
			assert.ErrorAs(t, err, &target)
		}},
		{"neither kind", `{"liveChatAuthorBadgeRenderer": {"tooltip": "x"}}`, func(t *testing.T, err error) {
			var target *UnsupportedVariantError
			assert.ErrorAs(t, err, &target)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAuthorBadge(parseJSON(t, tt.json), rootPath)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDecodeAuthorInfo(t *testing.T) {
	info, err := decodeAuthorInfo(parseJSON(t, `{
		"authorPhoto": `+testPhoto+`,
		"authorName": {"simpleText": "Alice"},
		"authorExternalChannelId": "UCalice",
		"authorBadges": [
			{"liveChatAuthorBadgeRenderer": {"icon": {"iconType": "MODERATOR"}, "tooltip": "Moderator"}}
		]
	}`), rootPath)
	require.NoError(t, err)
	assert.Equal(t, "Alice", info.DisplayName())
	assert.Equal(t, "UCalice", info.ExternalChannelID)
	assert.Equal(t, uint16(32), info.Photo.First().Width)
	assert.True(t, info.HasBadge(IconModerator))
	assert.False(t, info.HasBadge(IconOwner))
}

func TestDecodeAuthorInfoOptionalFields(t *testing.T) {
	info, err := decodeAuthorInfo(parseJSON(t, `{"authorPhoto": `+testPhoto+`, "authorExternalChannelId": "UCx"}`), rootPath)
	require.NoError(t, err)
	assert.Nil(t, info.Name)
	assert.Nil(t, info.Badges)
	assert.Equal(t, "", info.DisplayName())
	assert.False(t, info.HasBadge(IconOwner))

	_, err = decodeAuthorInfo(parseJSON(t, `{"authorPhoto": `+testPhoto+`, "authorExternalChannelId": "UCx", "authorBadges": []}`), rootPath)
	isEmptySequence(t, err)

	_, err = decodeAuthorInfo(parseJSON(t, `{"authorPhoto": {"thumbnails": []}, "authorExternalChannelId": "UCx"}`), rootPath)
	isEmptySequence(t, err)

	_, err = decodeAuthorInfo(parseJSON(t, `{"authorPhoto": `+testPhoto+`}`), rootPath)
	isMissingField(t, err)
}

func TestImageFirstIsSourceOrder(t *testing.T) {
	img, err := decodeImage(parseJSON(t, `{"thumbnails": [
		{"url": "small", "width": 16, "height": 16},
		{"url": "large", "width": 256, "height": 256}
	]}`), rootPath)
	require.NoError(t, err)
	assert.Equal(t, "small", img.First().URL)
}
