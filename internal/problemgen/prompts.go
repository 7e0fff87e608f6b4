package problemgen

// Prompts holds the localized text formats for doubling and halving
// questions. Each format takes the base number.
type Prompts struct {
	Double string
	Half   string
}

var prompts = map[string]Prompts{
	"nb": {
		Double: "Det dobbelte av %d er ...",
		Half:   "Halvparten av %d er ...",
	},
	"en": {
		Double: "Double %d is ...",
		Half:   "Half of %d is ...",
	},
}

// DefaultLocale is used when a locale has no prompt table.
const DefaultLocale = "nb"

// PromptsFor returns the prompt formats for locale, falling back to
// DefaultLocale.
func PromptsFor(locale string) Prompts {
	if p, ok := prompts[locale]; ok {
		return p
	}
	return prompts[DefaultLocale]
}

// Locales lists the supported prompt locales.
func Locales() []string {
	return []string{"nb", "en"}
}
