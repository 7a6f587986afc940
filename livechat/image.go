package livechat

import (
	"github.com/tidwall/gjson"
)

// SimpleText is the backend's plain, unformatted text object.
type SimpleText struct {
	SimpleText string `json:"simpleText"`
}

// Thumbnail is one rendition of an image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
}

// SimpleThumbnail is a rendition without dimensions, used by custom badges.
type SimpleThumbnail struct {
	URL string `json:"url"`
}

// Image lists the renditions of an image in source order.
type Image struct {
	Thumbnails NonEmpty[Thumbnail] `json:"thumbnails"`
}

// First returns the canonical thumbnail, which is the first one sent. No
// resolution comparison is made.
func (i Image) First() Thumbnail {
	return i.Thumbnails.First()
}

// CustomImage lists the renditions of a custom badge image.
type CustomImage struct {
	Thumbnails NonEmpty[SimpleThumbnail] `json:"thumbnails"`
}

func (i CustomImage) First() SimpleThumbnail {
	return i.Thumbnails.First()
}

func decodeSimpleText(r gjson.Result, path string) (SimpleText, error) {
	if err := expectObject(r, path); err != nil {
		return SimpleText{}, err
	}
	s, err := requireField(r, path, "simpleText", decodeString)
	if err != nil {
		return SimpleText{}, err
	}
	return SimpleText{SimpleText: s}, nil
}

func decodeThumbnail(r gjson.Result, path string) (Thumbnail, error) {
	if err := expectObject(r, path); err != nil {
		return Thumbnail{}, err
	}
	url, err := requireField(r, path, "url", decodeString)
	if err != nil {
		return Thumbnail{}, err
	}
	width, err := requireField(r, path, "width", decodeUint16)
	if err != nil {
		return Thumbnail{}, err
	}
	height, err := requireField(r, path, "height", decodeUint16)
	if err != nil {
		return Thumbnail{}, err
	}
	return Thumbnail{URL: url, Width: width, Height: height}, nil
}

func decodeSimpleThumbnail(r gjson.Result, path string) (SimpleThumbnail, error) {
	if err := expectObject(r, path); err != nil {
		return SimpleThumbnail{}, err
	}
	url, err := requireField(r, path, "url", decodeString)
	if err != nil {
		return SimpleThumbnail{}, err
	}
	return SimpleThumbnail{URL: url}, nil
}

func decodeImage(r gjson.Result, path string) (Image, error) {
	if err := expectObject(r, path); err != nil {
		return Image{}, err
	}
	thumbnails, err := requireField(r, path, "thumbnails", nonEmptyOf(decodeThumbnail))
	if err != nil {
		return Image{}, err
	}
	return Image{Thumbnails: thumbnails}, nil
}

func decodeCustomImage(r gjson.Result, path string) (CustomImage, error) {
	if err := expectObject(r, path); err != nil {
		return CustomImage{}, err
	}
	thumbnails, err := requireField(r, path, "thumbnails", nonEmptyOf(decodeSimpleThumbnail))
	if err != nil {
		return CustomImage{}, err
	}
	return CustomImage{Thumbnails: thumbnails}, nil
}
