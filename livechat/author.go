package livechat

import (
	"github.com/tidwall/gjson"
)

// IconType is the kind of a built-in author badge.
type IconType string

const (
	IconVerified  IconType = "VERIFIED"
	IconOwner     IconType = "OWNER"
	IconModerator IconType = "MODERATOR"
)

var iconTypes = []IconType{IconVerified, IconOwner, IconModerator}

// BadgeType is either an IconBadge or a CustomBadge.
type BadgeType interface {
	isBadgeType()
}

// IconBadge is a built-in badge identified by its icon.
type IconBadge struct {
	Icon IconType `json:"iconType"`
}

// CustomBadge is a channel-defined badge, such as a membership badge.
type CustomBadge struct {
	Image CustomImage `json:"customThumbnail"`
}

func (IconBadge) isBadgeType()   {}
func (CustomBadge) isBadgeType() {}

// AuthorBadge is one badge shown next to an author's name.
type AuthorBadge struct {
	Type    BadgeType `json:"type"`
	Tooltip string    `json:"tooltip"`
}

// AuthorInfo describes who sent a chat item. On the wire its fields are
// flattened into the item itself.
type AuthorInfo struct {
	Photo             Image                  `json:"authorPhoto"`
	Name              *SimpleText            `json:"authorName,omitempty"`
	ExternalChannelID string                 `json:"authorExternalChannelId"`
	Badges            *NonEmpty[AuthorBadge] `json:"authorBadges,omitempty"`
}

// DisplayName returns the author's name, or "" when the backend omitted it.
func (a AuthorInfo) DisplayName() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.SimpleText
}

// HasBadge reports whether the author carries the given built-in badge.
func (a AuthorInfo) HasBadge(icon IconType) bool {
	if a.Badges == nil {
		return false
	}
	for _, badge := range a.Badges.items {
		if b, ok := badge.Type.(IconBadge); ok && b.Icon == icon {
			return true
		}
	}
	return false
}

func decodeIconType(r gjson.Result, path string) (IconType, error) {
	s, err := decodeString(r, path)
	if err != nil {
		return "", err
	}
	for _, icon := range iconTypes {
		if string(icon) == s {
			return icon, nil
		}
	}
	known := make([]string, len(iconTypes))
	for i, icon := range iconTypes {
		known[i] = string(icon)
	}
	return "", &UnknownValueError{Path: path, Value: s, Known: known}
}

func decodeIconBadge(r gjson.Result, path string) (BadgeType, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	icon, err := requireField(r, path, "iconType", decodeIconType)
	if err != nil {
		return nil, err
	}
	return IconBadge{Icon: icon}, nil
}

func decodeCustomBadge(r gjson.Result, path string) (BadgeType, error) {
	img, err := decodeCustomImage(r, path)
	if err != nil {
		return nil, err
	}
	return CustomBadge{Image: img}, nil
}

var badgeTypes = resolver[BadgeType]{
	kind: "badge type",
	variants: []variant[BadgeType]{
		{key: "icon", decode: decodeIconBadge},
		{key: "customThumbnail", decode: decodeCustomBadge},
	},
}

// decodeAuthorBadge decodes the badge renderer body first and then dispatches
// the icon/customThumbnail part of it into a BadgeType.
func decodeAuthorBadge(r gjson.Result, path string) (AuthorBadge, error) {
	body, bodyPath, err := unwrap(r, path, "liveChatAuthorBadgeRenderer")
	if err != nil {
		return AuthorBadge{}, err
	}
	tooltip, err := requireField(body, bodyPath, "tooltip", decodeString)
	if err != nil {
		return AuthorBadge{}, err
	}
	typ, err := badgeTypes.resolve(body, bodyPath)
	if err != nil {
		return AuthorBadge{}, err
	}
	return AuthorBadge{Type: typ, Tooltip: tooltip}, nil
}

// decodeAuthorInfo reads the author fields flattened into an item object.
func decodeAuthorInfo(r gjson.Result, path string) (AuthorInfo, error) {
	photo, err := requireField(r, path, "authorPhoto", decodeImage)
	if err != nil {
		return AuthorInfo{}, err
	}
	name, err := optionalField(r, path, "authorName", decodeSimpleText)
	if err != nil {
		return AuthorInfo{}, err
	}
	channelID, err := requireField(r, path, "authorExternalChannelId", decodeString)
	if err != nil {
		return AuthorInfo{}, err
	}
	badges, err := optionalField(r, path, "authorBadges", nonEmptyOf(decodeAuthorBadge))
	if err != nil {
		return AuthorInfo{}, err
	}
	return AuthorInfo{
		Photo:             photo,
		Name:              name,
		ExternalChannelID: channelID,
		Badges:            badges,
	}, nil
}
