// Package bot holds the conversation logic: intent detection and the
// handler that composes the matcher, the count cache and the
// registration store behind a Telegram chat.
package bot

import (
	"regexp"
	"strings"
)

// Intent classifies an inbound message.
type Intent int

const (
	IntentFallback Intent = iota
	IntentStart
	IntentHelp
	IntentInfo
	IntentReset
	IntentRefresh
	IntentID
	IntentMunicipio
	IntentGreeting
)

var (
	municipioPrefix  = regexp.MustCompile(`^\s*municipio(\s|:)`)
	municipioExtract = regexp.MustCompile(`(?i)municipio[:\s]+(.+)$`)
)

var greetings = []string{"hola", "buenos días", "buenas", "saludos"}

// DetectIntent maps message text to an intent. Commands win over the
// "municipio ..." form, which only triggers when the message starts
// with that word; greetings are matched loosely anywhere in the text.
func DetectIntent(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.HasPrefix(t, "/start"):
		return IntentStart
	case strings.HasPrefix(t, "/ayuda"), t == "ayuda", t == "/help":
		return IntentHelp
	case strings.HasPrefix(t, "/info"), strings.Contains(t, "plan estatal"), strings.Contains(t, "ped"):
		return IntentInfo
	case strings.HasPrefix(t, "/reset"):
		return IntentReset
	case strings.HasPrefix(t, "/refrescar"):
		return IntentRefresh
	case strings.HasPrefix(t, "/id"):
		return IntentID
	}

	if municipioPrefix.MatchString(t) {
		return IntentMunicipio
	}

	for _, g := range greetings {
		if strings.Contains(t, g) {
			return IntentGreeting
		}
	}
	return IntentFallback
}

// ExtractMunicipio pulls the municipality name out of a
// "municipio <Nombre>" message; without the prefix the whole trimmed
// text is taken as the name.
func ExtractMunicipio(text string) string {
	if m := municipioExtract.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
