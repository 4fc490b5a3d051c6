package sharecard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const whatsappSendURL = "https://api.whatsapp.com/send"

// Invite holds the links a player shares to challenge a friend.
type Invite struct {
	URL         string `json:"inviteUrl"`
	ImageURL    string `json:"imageUrl"`
	WhatsAppURL string `json:"whatsappUrl"`
	Text        string `json:"text"`
}

// NewInvite builds the invite, card image and WhatsApp links against baseURL.
func NewInvite(baseURL, username string, score int) (Invite, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return Invite{}, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return Invite{}, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	username = NormalizeUsername(username)
	if score < 0 {
		score = 0
	}
	s := strconv.Itoa(score)

	invite := base.JoinPath("play")
	invite.RawQuery = url.Values{"invitedBy": {username}, "score": {s}}.Encode()

	image := base.JoinPath("api", "share")
	image.RawQuery = url.Values{"username": {username}, "score": {s}}.Encode()

	text := fmt.Sprintf("Join me on Globetrotter! I scored %d. Beat my score: %s", score, invite)
	wa, _ := url.Parse(whatsappSendURL)
	wa.RawQuery = url.Values{"text": {text}}.Encode()

	return Invite{
		URL:         invite.String(),
		ImageURL:    image.String(),
		WhatsAppURL: wa.String(),
		Text:        text,
	}, nil
}
