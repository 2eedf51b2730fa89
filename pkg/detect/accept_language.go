package detect

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps header parsing to avoid oversized input.
const maxAcceptLanguageLength = 4096

// languageTag represents a parsed language tag with quality value.
type languageTag struct {
	tag     string
	quality float64
}

// AcceptLanguage parses an HTTP Accept-Language header into a ranked list
// of candidate language tags, highest quality first. Each regional tag is
// followed by its base language; wildcards are dropped.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Returns: ["en-us", "en", "pl"]
func AcceptLanguage(header string) []string {
	tags := parseLanguageTags(header)

	candidates := make([]string, 0, len(tags)*2)
	for _, tag := range tags {
		candidates = appendWithBase(candidates, tag.tag)
	}
	return candidates
}

// parseLanguageTags parses the header into language tags with quality
// values, sorted by descending quality.
func parseLanguageTags(header string) []languageTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []languageTag

	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)

			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart != "" && langPart != "*" {
			tags = append(tags, languageTag{
				tag:     strings.ToLower(langPart),
				quality: quality,
			})
		}
	}

	slices.SortStableFunc(tags, func(a, b languageTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
