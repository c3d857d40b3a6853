package service

import (
	"errors"
	"fmt"
	"time"

	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/content"
	"github.com/maheshrc27/autopost/internal/models"
	"github.com/maheshrc27/autopost/pkg/utils"
)

var ErrWindowTooSmall = errors.New("scheduling window cannot hold the minimum number of posts")

// Slot is one planned publication.
type Slot struct {
	RunAt    time.Time       `json:"run_at"`
	Topic    string          `json:"topic"`
	City     string          `json:"city"`
	Category models.Category `json:"category"`
	Service  string          `json:"service,omitempty"`
}

// Planner turns a calendar date into a reproducible list of slots. It holds
// no state between calls.
type Planner struct {
	minPosts    int
	maxPosts    int
	gapMin      int
	gapMax      int
	windowStart int
	windowEnd   int
	loc         *time.Location
	cities      []string
	topics      map[models.Category][]string
	categories  []models.Category
}

func NewPlanner(s config.Schedule) (*Planner, error) {
	if s.MinPostsPerDay < 1 || s.MaxPostsPerDay < s.MinPostsPerDay {
		return nil, fmt.Errorf("posts per day range %d-%d is invalid", s.MinPostsPerDay, s.MaxPostsPerDay)
	}
	if s.GapMinMinutes < 1 || s.GapMaxMinutes < s.GapMinMinutes {
		return nil, fmt.Errorf("publish gap range %d-%d is invalid", s.GapMinMinutes, s.GapMaxMinutes)
	}
	start, err := config.ParseClock(s.WindowStart)
	if err != nil {
		return nil, err
	}
	end, err := config.ParseClock(s.WindowEnd)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, fmt.Errorf("schedule window %s-%s is empty", s.WindowStart, s.WindowEnd)
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}

	cities := s.Cities
	if len(cities) == 0 {
		cities = content.DefaultCities
	}

	return &Planner{
		minPosts:    s.MinPostsPerDay,
		maxPosts:    s.MaxPostsPerDay,
		gapMin:      s.GapMinMinutes,
		gapMax:      s.GapMaxMinutes,
		windowStart: start,
		windowEnd:   end,
		loc:         loc,
		cities:      cities,
		topics:      content.Topics,
		categories:  models.Categories,
	}, nil
}

func (p *Planner) Location() *time.Location {
	return p.loc
}

// DayBounds returns the start of the given date and of the following day in
// the planner's timezone.
func (p *Planner) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(p.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, p.loc)
	return start, start.AddDate(0, 0, 1)
}

// PlanDay returns the slots for a date. The same date always yields the same
// slots.
func (p *Planner) PlanDay(date time.Time) ([]Slot, error) {
	y, m, d := date.In(p.loc).Date()
	rng := utils.NewSplitMix(utils.DateSeed(y, int(m), d))

	span := p.windowEnd - p.windowStart
	n := rng.IntRange(p.minPosts, p.maxPosts)
	if p.gapMin > 0 {
		if fit := span/p.gapMin + 1; n > fit {
			n = fit
		}
	}
	if n < p.minPosts {
		return nil, ErrWindowTooSmall
	}

	// Each gap is capped so the gaps still to come can take at least gapMin.
	gaps := make([]int, n-1)
	budget := span
	total := 0
	for i := range gaps {
		left := len(gaps) - i - 1
		hi := budget - left*p.gapMin
		if hi > p.gapMax {
			hi = p.gapMax
		}
		gaps[i] = rng.IntRange(p.gapMin, hi)
		budget -= gaps[i]
		total += gaps[i]
	}
	offset := rng.IntRange(0, span-total)

	dayStart := time.Date(y, m, d, 0, 0, 0, 0, p.loc)
	minute := p.windowStart + offset
	slots := make([]Slot, 0, n)
	var prev models.Category
	for i := 0; i < n; i++ {
		if i > 0 {
			minute += gaps[i-1]
		}
		category := p.pickCategory(rng, prev)
		pool := p.topics[category]
		slot := Slot{
			RunAt:    dayStart.Add(time.Duration(minute) * time.Minute),
			Topic:    pool[rng.Intn(len(pool))],
			City:     p.cities[rng.Intn(len(p.cities))],
			Category: category,
		}
		if rng.Float64() < 0.5 {
			slot.Service = content.Services[rng.Intn(len(content.Services))]
		}
		slots = append(slots, slot)
		prev = category
	}
	return slots, nil
}

func (p *Planner) pickCategory(rng *utils.SplitMix, prev models.Category) models.Category {
	if prev == "" {
		return p.categories[rng.Intn(len(p.categories))]
	}
	candidates := make([]models.Category, 0, len(p.categories)-1)
	for _, c := range p.categories {
		if c != prev {
			candidates = append(candidates, c)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}
