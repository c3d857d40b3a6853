package content

import "github.com/maheshrc27/autopost/internal/models"

// Topics holds the subject pool for every category. Every topic is short
// enough that "<Topic> in <City>" fits a 70 character title for the cities
// in DefaultCities.
var Topics = map[models.Category][]string{
	models.CategoryMassage: {
		"deep tissue massage benefits",
		"traditional balinese massage",
		"hot stone massage for back pain",
		"swedish massage for beginners",
		"sports massage recovery",
		"reflexology for better sleep",
	},
	models.CategoryFacial: {
		"natural facial treatments",
		"facial care for humid weather",
		"anti aging facial options",
		"acne friendly facial routines",
		"brightening facial treatments",
	},
	models.CategorySpa: {
		"day spa packages",
		"couples spa experiences",
		"traditional lulur body scrub",
		"aromatherapy spa rituals",
		"affordable spa treatments",
	},
	models.CategoryHomeService: {
		"home massage service",
		"hotel room massage service",
		"mobile spa at home",
		"villa massage for groups",
		"late night home massage",
	},
	models.CategoryAuthority: {
		"how to choose a massage therapist?",
		"what is a certified therapist?",
		"massage etiquette for first timers",
		"massage pricing explained",
		"safety standards for home massage",
	},
	models.CategoryEngagement: {
		"massage myths and facts",
		"self care rituals after work",
		"stretching tips between massages",
		"why regular massage matters?",
		"wellness habits of locals",
	},
	models.CategoryConversion: {
		"book a massage today",
		"same day massage booking",
		"best massage deals this week",
		"first booking discounts",
		"trusted therapists near you",
	},
	models.CategoryTrending: {
		"wellness tourism trends",
		"digital detox spa retreats",
		"sound healing sessions",
		"recovery massage for runners",
		"holiday wellness getaways",
	},
}

// DefaultCities is the city pool used when CITY_POOL is not configured.
var DefaultCities = []string{
	"Denpasar",
	"Ubud",
	"Canggu",
	"Seminyak",
	"Kuta",
	"Sanur",
	"Jimbaran",
	"Jakarta",
	"Bandung",
	"Yogyakarta",
	"Surabaya",
	"Semarang",
	"Malang",
	"Medan",
	"Makassar",
	"Lombok",
}

// Services are optional qualifiers attached to roughly half of the jobs.
var Services = []string{
	"Balinese massage",
	"hot stone massage",
	"reflexology",
	"aromatherapy massage",
	"facial treatment",
	"lulur body scrub",
	"Swedish massage",
	"deep tissue massage",
}

// baliCities get a tropical setting in image prompts.
var baliCities = map[string]bool{
	"denpasar": true,
	"ubud":     true,
	"canggu":   true,
	"seminyak": true,
	"kuta":     true,
	"sanur":    true,
	"jimbaran": true,
	"nusa dua": true,
	"uluwatu":  true,
	"legian":   true,
}

func IsBaliCity(city string) bool {
	return baliCities[lower(city)]
}
