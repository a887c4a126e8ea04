package explorer

import (
	"regexp"
	"strings"
)

// The explorer model is instructed to end its reply with a summary block:
//
//	Destination: Paris, France
//	Interests: art, food
//
// Model output is untrusted, so the reply is size-capped and a summary is
// only accepted when the destination names a concrete place.
const maxReplyLen = 64 * 1024

var (
	destinationRe = regexp.MustCompile(`(?im)^\s*\**\s*Destination\s*\**\s*:\s*(.+?)\s*$`)
	interestsRe   = regexp.MustCompile(`(?im)^\s*\**\s*Interests\s*\**\s*:\s*(.+?)\s*$`)
)

// vaguePlaceholders are destination phrases that never count as a concrete
// place, no matter how insistently the model emits them.
var vaguePlaceholders = []string{
	"somewhere",
	"anywhere",
	"not sure",
	"still deciding",
	"to be decided",
	"tbd",
	"no idea",
	"a warm place",
	"a nice place",
	"surprise me",
	"undecided",
	"unknown",
}

// ParseConfirmation extracts the confirmation summary from a model reply.
// ok is false when no summary is present or the destination is not a
// concrete place name.
func ParseConfirmation(reply string) (destination, interests string, ok bool) {
	if len(reply) > maxReplyLen {
		reply = reply[:maxReplyLen]
	}

	m := destinationRe.FindStringSubmatch(reply)
	if m == nil {
		return "", "", false
	}
	destination = cleanField(m[1])
	if !isConcretePlace(destination) {
		return "", "", false
	}

	if im := interestsRe.FindStringSubmatch(reply); im != nil {
		interests = cleanField(im[1])
		if !looksLikeValue(interests) {
			interests = ""
		}
	}

	return destination, interests, true
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_`")
	return strings.TrimSpace(s)
}

// isConcretePlace rejects empty values, template echoes and placeholder
// phrases. This guard protects the auto-itinerary precondition from ever
// firing on a meaningless destination.
func isConcretePlace(v string) bool {
	if !looksLikeValue(v) {
		return false
	}
	lower := strings.ToLower(v)
	for _, p := range vaguePlaceholders {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}

// looksLikeValue rejects empty fields and bracketed template echoes such as
// "[the confirmed specific place]".
func looksLikeValue(v string) bool {
	if v == "" || len(v) > 200 {
		return false
	}
	if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "<") {
		return false
	}
	return true
}
