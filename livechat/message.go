package livechat

import (
	"strings"

	"github.com/tidwall/gjson"
)

const youtubeOrigin = "https://www.youtube.com"

// MessageContent is one run of a Message: Text, Link or Emoji.
type MessageContent interface {
	isContent()
}

// Text is a plain text run.
type Text string

// Link is a hyperlink run. URL is absolute.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Emoji is an emoji run. Label is the first of the emoji's shortcuts.
type Emoji struct {
	Image    Image  `json:"image"`
	IsCustom bool   `json:"isCustomEmoji"`
	Label    string `json:"label"`
}

func (Text) isContent()  {}
func (Link) isContent()  {}
func (Emoji) isContent() {}

// Message is a rich text made of one or more runs.
type Message struct {
	Runs NonEmpty[MessageContent] `json:"runs"`
}

// String flattens the message to plain text: links keep their text and emoji
// are replaced by their label.
func (m Message) String() string {
	var sb strings.Builder
	for _, run := range m.Runs.items {
		switch run := run.(type) {
		case Text:
			sb.WriteString(string(run))
		case Link:
			sb.WriteString(run.Text)
		case Emoji:
			sb.WriteString(run.Label)
		}
	}
	return sb.String()
}

func decodeMessage(r gjson.Result, path string) (Message, error) {
	if err := expectObject(r, path); err != nil {
		return Message{}, err
	}
	runs, err := requireField(r, path, "runs", nonEmptyOf(decodeRun))
	if err != nil {
		return Message{}, err
	}
	return Message{Runs: runs}, nil
}

func decodeURLEndpoint(r gjson.Result, path string) (string, error) {
	if err := expectObject(r, path); err != nil {
		return "", err
	}
	url, err := requireField(r, path, "url", decodeString)
	if err != nil {
		return "", err
	}
	return youtubeOrigin + url, nil
}

func decodeWatchEndpoint(r gjson.Result, path string) (string, error) {
	if err := expectObject(r, path); err != nil {
		return "", err
	}
	videoID, err := requireField(r, path, "videoId", decodeString)
	if err != nil {
		return "", err
	}
	return youtubeOrigin + "/watch?v=" + videoID, nil
}

// navigationTargets resolves a navigationEndpoint into an absolute URL.
var navigationTargets = resolver[string]{
	kind: "navigation endpoint",
	variants: []variant[string]{
		{key: "urlEndpoint", decode: decodeURLEndpoint},
		{key: "watchEndpoint", decode: decodeWatchEndpoint},
	},
	none: func(path string) (string, error) {
		return "", &ContentError{Path: path, Reason: "no `urlEndpoint` nor `watchEndpoint`"}
	},
}

func decodeEmoji(r gjson.Result, path string) (Emoji, error) {
	if err := expectObject(r, path); err != nil {
		return Emoji{}, err
	}
	shortcuts, err := requireField(r, path, "shortcuts", nonEmptyOf(decodeString))
	if err != nil {
		return Emoji{}, err
	}
	img, err := requireField(r, path, "image", decodeImage)
	if err != nil {
		return Emoji{}, err
	}
	custom, err := requireField(r, path, "isCustomEmoji", decodeBool)
	if err != nil {
		return Emoji{}, err
	}
	return Emoji{Image: img, IsCustom: custom, Label: shortcuts.First()}, nil
}

// decodeRun classifies one run. The checks run in a fixed order and any
// combination not accepted below is an error; there is no fallback.
func decodeRun(r gjson.Result, path string) (MessageContent, error) {
	if err := expectObject(r, path); err != nil {
		return nil, err
	}
	text := r.Get("text")
	nav := r.Get("navigationEndpoint")
	emoji := r.Get("emoji")
	hasText, hasNav, hasEmoji := present(text), present(nav), present(emoji)

	if hasText && hasEmoji {
		return nil, &AmbiguousVariantError{Path: path, Kind: "message run", Keys: []string{"text", "emoji"}}
	}
	if hasEmoji && hasNav {
		return nil, &AmbiguousVariantError{Path: path, Kind: "message run", Keys: []string{"emoji", "navigationEndpoint"}}
	}
	if hasNav && !hasText {
		return nil, &ContentError{Path: path, Reason: "have `navigationEndpoint`, but no `text`"}
	}

	if hasText {
		s, err := decodeString(text, join(path, "text"))
		if err != nil {
			return nil, err
		}
		if !hasNav {
			return Text(s), nil
		}
		url, err := navigationTargets.resolve(nav, join(path, "navigationEndpoint"))
		if err != nil {
			return nil, err
		}
		return Link{Text: s, URL: url}, nil
	}

	if hasEmoji {
		e, err := decodeEmoji(emoji, join(path, "emoji"))
		if err != nil {
			return nil, err
		}
		return e, nil
	}

	return nil, &ContentError{Path: path, Reason: "couldn't deserialize"}
}
