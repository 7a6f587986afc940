package livechat

import (
	"github.com/tidwall/gjson"
)

// ParticipantsList is the list of chat participants shown in the side panel.
type ParticipantsList struct {
	Participants NonEmpty[Participant] `json:"participants"`
}

// Participant is one entry of the participants list.
type Participant struct {
	Name   SimpleText            `json:"authorName"`
	Photo  Image                 `json:"authorPhoto"`
	Badges NonEmpty[AuthorBadge] `json:"authorBadges"`
}

func decodeParticipantsList(r gjson.Result, path string) (ParticipantsList, error) {
	body, bodyPath, err := unwrap(r, path, "liveChatParticipantsListRenderer")
	if err != nil {
		return ParticipantsList{}, err
	}
	participants, err := requireField(body, bodyPath, "participants", nonEmptyOf(decodeParticipant))
	if err != nil {
		return ParticipantsList{}, err
	}
	return ParticipantsList{Participants: participants}, nil
}

func decodeParticipant(r gjson.Result, path string) (Participant, error) {
	body, bodyPath, err := unwrap(r, path, "liveChatParticipantRenderer")
	if err != nil {
		return Participant{}, err
	}
	name, err := requireField(body, bodyPath, "authorName", decodeSimpleText)
	if err != nil {
		return Participant{}, err
	}
	photo, err := requireField(body, bodyPath, "authorPhoto", decodeImage)
	if err != nil {
		return Participant{}, err
	}
	badges, err := requireField(body, bodyPath, "authorBadges", nonEmptyOf(decodeAuthorBadge))
	if err != nil {
		return Participant{}, err
	}
	return Participant{Name: name, Photo: photo, Badges: badges}, nil
}
