package i18n

// Localized is a translator bound to a default locale, usually the
// Accept-Language header of the current request. An explicit locale still
// wins.
type Localized struct {
	Catalog *Catalog
	Locale  string
}

// For binds c to locale.
func (c *Catalog) For(locale string) Localized {
	return Localized{Catalog: c, Locale: locale}
}

func (l Localized) Translate(key string, replace map[string]string, locale string) string {
	if locale == "" {
		locale = l.Locale
	}
	return l.Catalog.Translate(key, replace, locale)
}

func (l Localized) Choice(key string, number int, replace map[string]string, locale string) string {
	if locale == "" {
		locale = l.Locale
	}
	return l.Catalog.Choice(key, number, replace, locale)
}
