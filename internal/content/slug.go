package content

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 6
	maxBaseSlugLen = 80
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, strips diacritics and joins the remaining
// alphanumeric runs with single hyphens.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// BaseSlug is the slug of topic and city without a uniqueness suffix.
func BaseSlug(topic, city string) string {
	base := Slugify(topic + " " + city)
	if len(base) <= maxBaseSlugLen {
		return base
	}
	base = base[:maxBaseSlugLen]
	if i := strings.LastIndex(base, "-"); i > 0 {
		base = base[:i]
	}
	return strings.Trim(base, "-")
}

// WithSuffix appends a slugified suffix to base.
func WithSuffix(base, suffix string) string {
	suffix = Slugify(suffix)
	switch {
	case suffix == "":
		return base
	case base == "":
		return suffix
	}
	return base + "-" + suffix
}

// NewSuffix returns a short random token made of [a-z0-9].
func NewSuffix() string {
	id, err := gonanoid.Generate(suffixAlphabet, suffixLength)
	if err != nil {
		slog.Info(err.Error())
		id = strconv.FormatInt(time.Now().UnixNano(), 36)
		return id[len(id)-suffixLength:]
	}
	return id
}
