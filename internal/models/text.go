// Package models defines the training module documents: the persisted form,
// the presentation-ready domain form, per-user progress and the acting user.
package models

// TranslatableText is a localized text node. Key is the stable term key used
// to look translations up at the translation provider.
type TranslatableText struct {
	Key            string            `json:"key"`
	ReferenceValue string            `json:"referenceValue"`
	Translations   map[string]string `json:"translations"`
}

// NewText returns a node with no translations.
func NewText(key, referenceValue string) TranslatableText {
	return TranslatableText{Key: key, ReferenceValue: referenceValue, Translations: map[string]string{}}
}

// WithTranslations returns a copy of t carrying a copy of translations
// (an empty map when nil).
func (t TranslatableText) WithTranslations(translations map[string]string) TranslatableText {
	out := make(map[string]string, len(translations))
	for lang, text := range translations {
		out[lang] = text
	}
	t.Translations = out
	return t
}

// Clone deep-copies the node.
func (t TranslatableText) Clone() TranslatableText {
	return t.WithTranslations(t.Translations)
}
