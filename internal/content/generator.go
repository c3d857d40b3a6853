// Package content turns a topic, a city and an optional service into a
// complete blog post. Generation is pure: the same input always selects the
// same templates, only the random slug suffix varies between calls.
package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MaxTitleLength       = 70
	MinTitleLength       = 50
	MinDescriptionLength = 140
	MaxDescriptionLength = 160
	MinBodyWords         = 600
	MaxBodyWords         = 900
	MaxHashtags          = 8
)

type Input struct {
	Topic    string
	City     string
	Category models.Category
	Service  string
	// SlugSuffix replaces the random uniqueness token when set.
	SlugSuffix string
	// Seed overrides the seed derived from topic, city and service.
	Seed uint64
}

// Seed derives the template selection seed from topic, city and service.
func Seed(topic, city, service string) uint64 {
	return xxhash.Sum64String(lower(topic) + "|" + lower(city) + "|" + lower(service))
}

// Generate builds the post content for in. Topic and city must be non-blank.
func Generate(in Input) models.GeneratedPostContent {
	topic := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(in.Topic), "?"))
	city := strings.TrimSpace(in.City)
	service := strings.TrimSpace(in.Service)

	seed := in.Seed
	if seed == 0 {
		seed = Seed(topic, city, service)
	}
	rng := utils.NewSplitMix(seed)

	suffix := in.SlugSuffix
	if Slugify(suffix) == "" {
		suffix = NewSuffix()
	}
	base := BaseSlug(topic, city)

	return models.GeneratedPostContent{
		Title:       buildTitle(rng, in.Topic, topic, city),
		Slug:        WithSuffix(base, suffix),
		BaseSlug:    base,
		Description: buildDescription(rng, topic, city, service),
		Body:        buildBody(rng, topic, city, service),
		Hashtags:    buildHashtags(topic, city, service, in.Category),
		ImagePrompt: BuildImagePrompt(topic, city, service),
		Seed:        seed,
	}
}

var questionWords = map[string]bool{
	"how": true, "what": true, "why": true, "which": true, "when": true, "where": true,
	"who": true, "is": true, "are": true, "can": true, "should": true, "do": true, "does": true,
}

func isQuestion(rawTopic string) bool {
	raw := strings.TrimSpace(rawTopic)
	if strings.HasSuffix(raw, "?") {
		return true
	}
	words := strings.Fields(lower(raw))
	return len(words) > 0 && questionWords[words[0]]
}

func buildTitle(rng *utils.SplitMix, rawTopic, topic, city string) string {
	start := rng.Intn(len(titlePatterns))
	titled := titleCase(topic)

	if isQuestion(rawTopic) {
		return fitTitle(titled, city)
	}

	best := ""
	for i := range titlePatterns {
		p := titlePatterns[(start+i)%len(titlePatterns)]
		t := strings.NewReplacer("{Topic}", titled, "{City}", city).Replace(p)
		n := utf8.RuneCountInString(t)
		if n > MaxTitleLength {
			continue
		}
		if n >= MinTitleLength {
			return t
		}
		if n > utf8.RuneCountInString(best) {
			best = t
		}
	}
	if best != "" {
		return best
	}
	return fitTitle(titled, city)
}

// fitTitle renders "<Topic> in <City>", dropping trailing topic words until
// the title fits. The city is always kept intact.
func fitTitle(titled, city string) string {
	words := strings.Fields(titled)
	for len(words) > 1 {
		t := strings.Join(words, " ") + " in " + city
		if utf8.RuneCountInString(t) <= MaxTitleLength {
			return t
		}
		words = words[:len(words)-1]
	}
	t := strings.Join(words, " ") + " in " + city
	return truncateRunes(t, MaxTitleLength)
}

var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "for": true, "in": true,
	"of": true, "on": true, "or": true, "the": true, "to": true, "vs": true, "with": true,
}

func titleCase(s string) string {
	words := strings.Fields(cases.Title(language.English).String(s))
	for i, w := range words {
		if i > 0 && smallWords[lower(w)] {
			words[i] = lower(w)
		}
	}
	return strings.Join(words, " ")
}

func buildDescription(rng *utils.SplitMix, topic, city, service string) string {
	r := strings.NewReplacer("{topic}", lower(topic), "{city}", city)
	parts := []string{
		r.Replace(descriptionOpenings[rng.Intn(len(descriptionOpenings))]),
	}
	if service != "" {
		parts = append(parts, fmt.Sprintf("Includes %s options.", service))
	}
	parts = append(parts, descriptionMiddles[rng.Intn(len(descriptionMiddles))])

	desc := strings.Join(parts, " ")
	first := rng.Intn(len(descriptionFillers))
	for i := 0; utf8.RuneCountInString(desc) < MinDescriptionLength; i++ {
		desc += " " + descriptionFillers[(first+i)%len(descriptionFillers)]
	}
	return fitDescription(desc)
}

// fitDescription truncates desc to MaxDescriptionLength, cutting on a word
// boundary and appending an ellipsis.
func fitDescription(desc string) string {
	if utf8.RuneCountInString(desc) <= MaxDescriptionLength {
		return desc
	}
	const ellipsis = "..."
	limit := MaxDescriptionLength - len(ellipsis)
	cut := []rune(desc)[:limit]
	if i := lastSpace(cut); i > 0 {
		trimmed := strings.TrimRight(string(cut[:i]), " ,.;:?")
		if utf8.RuneCountInString(trimmed)+len(ellipsis) >= MinDescriptionLength {
			return trimmed + ellipsis
		}
	}
	return string(cut) + ellipsis
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}

func buildBody(rng *utils.SplitMix, topic, city, service string) string {
	r := strings.NewReplacer("{topic}", lower(topic), "{city}", city, "{service}", service)

	intro := r.Replace(introTemplates[rng.Intn(len(introTemplates))])
	serviceIdx := rng.Intn(len(serviceTemplates))
	order := rng.Perm(len(bodyTemplates))
	local := r.Replace(localTemplates[rng.Intn(len(localTemplates))])
	cta := r.Replace(ctaTemplates[rng.Intn(len(ctaTemplates))])

	head := []string{intro}
	if service != "" {
		head = append(head, r.Replace(serviceTemplates[serviceIdx]))
	}
	tail := []string{local, cta}

	words := wordCount(head...) + wordCount(tail...)
	var body []string
	for _, idx := range order {
		if words >= MinBodyWords {
			break
		}
		p := r.Replace(bodyTemplates[idx])
		n := wordCount(p)
		if words+n > MaxBodyWords {
			continue
		}
		body = append(body, p)
		words += n
	}

	paragraphs := append(append(head, body...), tail...)
	return strings.Join(paragraphs, "\n\n")
}

func wordCount(paragraphs ...string) int {
	n := 0
	for _, p := range paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}

func buildHashtags(topic, city, service string, category models.Category) []string {
	candidates := []string{
		city,
		categoryKeyword(category) + city,
		topic,
	}
	if service != "" {
		candidates = append(candidates, service)
	}
	candidates = append(candidates, "indastreet")
	candidates = append(candidates, keywords(topic)...)
	candidates = append(candidates, "wellness", "indonesia")

	seen := make(map[string]bool)
	var tags []string
	for _, c := range candidates {
		tag := strings.ReplaceAll(Slugify(c), "-", "")
		if tag == "" || len(tag) > 40 || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, "#"+tag)
		if len(tags) == MaxHashtags {
			break
		}
	}
	return tags
}

func categoryKeyword(c models.Category) string {
	switch c {
	case models.CategoryFacial:
		return "facial"
	case models.CategorySpa:
		return "spa"
	case models.CategoryHomeService:
		return "homemassage"
	default:
		return "massage"
	}
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "at": true, "best": true, "for": true,
	"how": true, "in": true, "is": true, "of": true, "on": true, "or": true, "the": true,
	"this": true, "to": true, "what": true, "why": true, "with": true, "you": true, "your": true,
	"near": true, "after": true, "between": true, "today": true, "week": true,
}

// keywords returns the significant words of a topic in order.
func keywords(topic string) []string {
	var out []string
	for _, w := range strings.Fields(lower(topic)) {
		w = strings.Trim(w, "?!.,:;")
		if len(w) < 4 || stopWords[w] || questionWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// BuildImagePrompt describes a photo for the post without asking for any
// rendered text.
func BuildImagePrompt(topic, city, service string) string {
	subject := service
	if subject == "" {
		kw := keywords(topic)
		if len(kw) > 4 {
			kw = kw[:4]
		}
		subject = strings.Join(kw, " ")
		if subject == "" {
			subject = "a relaxing massage"
		}
	}

	setting := fmt.Sprintf("a calm, modern treatment room in %s", city)
	if IsBaliCity(city) {
		setting = fmt.Sprintf("a tropical Balinese spa in %s with frangipani flowers and natural wood", city)
	}

	return fmt.Sprintf(
		"Photorealistic photograph of %s, %s, soft natural lighting, warm tones, shallow depth of field, high detail, no text, no watermark, no logos",
		lower(subject), setting,
	)
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func truncateRunes(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
