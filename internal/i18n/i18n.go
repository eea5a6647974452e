package i18n

import (
	"embed"
	"encoding/json"
	"strings"
)

//go:embed locales
var localeFS embed.FS

const DefaultLanguage = "fr"

// Translator resolves dot-separated message keys ("shop.payment.unsupported")
// against per-language nested JSON documents, falling back to the default
// language and finally to the key itself.
type Translator struct {
	messages map[string]map[string]any
}

func New() (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	messages := make(map[string]map[string]any, len(entries))

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")

		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, err
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}

		messages[lang] = doc
	}

	return &Translator{messages: messages}, nil
}

// T looks key up in lang, then in the default language. A key that resolves
// to anything other than a string, or to nothing at all, comes back as-is.
func (t *Translator) T(lang, key string) string {
	if msg, ok := lookup(t.messages[normalize(lang)], key); ok {
		return msg
	}

	if msg, ok := lookup(t.messages[DefaultLanguage], key); ok {
		return msg
	}

	return key
}

// MatchLanguage picks a supported language from an Accept-Language header
// value, defaulting when nothing matches.
func (t *Translator) MatchLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang := normalize(tag)
		if _, ok := t.messages[lang]; ok {
			return lang
		}
	}

	return DefaultLanguage
}

func normalize(lang string) string {
	lang, _, _ = strings.Cut(strings.ToLower(lang), "-")
	return lang
}

func lookup(doc map[string]any, key string) (string, bool) {
	if doc == nil || key == "" {
		return "", false
	}

	var current any = map[string]any(doc)

	for _, part := range strings.Split(key, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}

		current, ok = obj[part]
		if !ok {
			return "", false
		}
	}

	msg, ok := current.(string)
	return msg, ok
}
