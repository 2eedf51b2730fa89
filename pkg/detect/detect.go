// Package detect produces ranked language-tag candidate lists for the
// translation resolver: from the host environment's locale settings and
// from HTTP Accept-Language headers.
//
// Candidates are ordered most-preferred first; regional tags are followed
// by their base language so that "de_DE" can fall back to "de". The
// resolver tries each candidate in order and uses the first one for which
// a translation source exists.
package detect

import (
	"os"
	"strings"
)

// localeEnvVars in GNU gettext precedence order.
var localeEnvVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// Languages reads the operating system's configured UI languages from the
// environment, following GNU gettext conventions: LANGUAGE (colon-separated
// list) takes precedence over LC_ALL, LC_MESSAGES, and LANG. Encoding
// suffixes are stripped ("ru_RU.UTF-8" becomes "ru_RU") and the C/POSIX
// locales are skipped. Returns nil when nothing usable is set.
func Languages() []string {
	for _, env := range localeEnvVars {
		value := os.Getenv(env)
		if value == "" {
			continue
		}

		var raw []string
		if env == "LANGUAGE" {
			raw = strings.Split(value, ":")
		} else {
			raw = []string{value}
		}

		var candidates []string
		for _, tag := range raw {
			if idx := strings.IndexByte(tag, '.'); idx >= 0 {
				tag = tag[:idx]
			}
			tag = strings.TrimSpace(tag)
			if tag == "" || tag == "C" || tag == "POSIX" {
				continue
			}
			candidates = appendWithBase(candidates, tag)
		}

		if len(candidates) > 0 {
			return candidates
		}
	}

	return nil
}

// appendWithBase appends tag and, when tag carries a region, its base
// language, skipping duplicates (case-insensitive).
func appendWithBase(candidates []string, tag string) []string {
	candidates = appendUnique(candidates, tag)
	if base := baseLanguage(tag); base != tag {
		candidates = appendUnique(candidates, base)
	}
	return candidates
}

func appendUnique(candidates []string, tag string) []string {
	for _, existing := range candidates {
		if strings.EqualFold(existing, tag) {
			return candidates
		}
	}
	return append(candidates, tag)
}

// baseLanguage strips the region from a language tag ("en_US" or "en-US"
// becomes "en"). Returns the input unchanged if there is no region.
func baseLanguage(tag string) string {
	if i := strings.IndexAny(tag, "_-"); i > 0 {
		return tag[:i]
	}
	return tag
}
