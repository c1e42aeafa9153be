package render

import "golang.org/x/text/language"

// LocaleResolver selects which installed locale variant serves a requested
// locale. Resolve must be a pure function of its arguments; the same inputs
// always yield the same choice.
type LocaleResolver interface {
	Resolve(requested string, available []string) (string, bool)
}

// LocaleResolverFunc adapts a plain function to the LocaleResolver interface.
type LocaleResolverFunc func(requested string, available []string) (string, bool)

// Resolve calls the wrapped function.
func (f LocaleResolverFunc) Resolve(requested string, available []string) (string, bool) {
	return f(requested, available)
}

// DefaultResolver returns the built-in policy: exact locale match when
// present, otherwise the first-installed locale for the source. It only fails
// when no locales are available at all.
func DefaultResolver() LocaleResolver {
	return LocaleResolverFunc(func(requested string, available []string) (string, bool) {
		if len(available) == 0 {
			return "", false
		}
		for _, locale := range available {
			if locale == requested {
				return locale, true
			}
		}
		return available[0], true
	})
}

// MatchResolver returns a BCP 47 aware policy backed by x/text language
// matching, so a request for "en-US" can serve an installed "en" variant.
// Locales that do not parse as language tags are skipped during matching;
// when nothing matches with any confidence the first-installed locale wins,
// keeping fallback deterministic.
func MatchResolver() LocaleResolver {
	return LocaleResolverFunc(func(requested string, available []string) (string, bool) {
		if len(available) == 0 {
			return "", false
		}

		tags := make([]language.Tag, 0, len(available))
		names := make([]string, 0, len(available))
		for _, locale := range available {
			tag, err := language.Parse(locale)
			if err != nil {
				continue
			}
			tags = append(tags, tag)
			names = append(names, locale)
		}
		if len(tags) == 0 {
			return available[0], true
		}

		requestedTag, err := language.Parse(requested)
		if err != nil {
			return available[0], true
		}

		matcher := language.NewMatcher(tags)
		_, index, confidence := matcher.Match(requestedTag)
		if confidence == language.No {
			return available[0], true
		}
		return names[index], true
	})
}
