package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	guestPattern       = regexp.MustCompile(`(\d+)\s*(?:guest|person|people)`)
	standaloneIntRegex = regexp.MustCompile(`\b(10|[1-9])\b`)
)

type relativeDate struct {
	pattern *regexp.Regexp
	resolve func(today time.Time) time.Time
}

type phraseToken struct {
	phrase string
	token  string
}

type EntityExtractor struct {
	relativeDates []relativeDate
	roomTypes     []string
	periods       []phraseToken
	priceRanges   map[PriceRange][]string
	rangeOrder    []PriceRange
}

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		relativeDates: []relativeDate{
			{
				pattern: regexp.MustCompile(`\btomorrow\b`),
				resolve: func(today time.Time) time.Time { return today.AddDate(0, 0, 1) },
			},
			{
				pattern: regexp.MustCompile(`\bnext week\b`),
				resolve: func(today time.Time) time.Time { return today.AddDate(0, 0, 7) },
			},
			{
				pattern: regexp.MustCompile(`\bnext month\b`),
				resolve: func(today time.Time) time.Time { return today.AddDate(0, 1, 0) },
			},
			{
				pattern: regexp.MustCompile(`\bnext weekend\b`),
				resolve: UpcomingSaturday,
			},
		},
		roomTypes: []string{"standard", "deluxe", "suite", "executive", "presidential"},
		// longer phrases first so "next weekend" never resolves as "next week"
		periods: []phraseToken{
			{phrase: "this weekend", token: "this_weekend"},
			{phrase: "next weekend", token: "next_weekend"},
			{phrase: "next week", token: "next_week"},
			{phrase: "this week", token: "this_week"},
			{phrase: "next month", token: "next_month"},
			{phrase: "this month", token: "this_month"},
			{phrase: "weekend", token: "weekend"},
			{phrase: "tomorrow", token: "tomorrow"},
			{phrase: "today", token: "today"},
		},
		priceRanges: map[PriceRange][]string{
			PriceRangeLow:    {"cheap", "affordable", "budget"},
			PriceRangeHigh:   {"expensive", "luxury", "premium"},
			PriceRangeMedium: {"mid", "moderate"},
		},
		rangeOrder: []PriceRange{PriceRangeLow, PriceRangeHigh, PriceRangeMedium},
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpcomingSaturday returns the next Saturday on or after t.
func UpcomingSaturday(t time.Time) time.Time {
	today := StartOfDay(t)
	days := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, days)
}

func (e *EntityExtractor) Extract(text string, now time.Time) EntityBag {
	bag := DefaultEntities()
	lower := strings.ToLower(text)

	if matches := e.dateMatches(lower, now); len(matches) > 0 {
		bag.Dates = make([]time.Time, 0, len(matches))
		bag.RelativeDates = true
		for _, m := range matches {
			bag.Dates = append(bag.Dates, m.date)
			bag.RelativeDates = bag.RelativeDates && m.relative
		}
		bag.markExplicit(EntityDates)
	}

	if roomType, ok := e.ExtractRoomType(lower); ok {
		bag.RoomType = roomType
		bag.markExplicit(EntityRoomType)
	}

	if guests, ok := e.ExtractGuests(lower); ok {
		bag.Guests = guests
		bag.markExplicit(EntityGuests)
	}

	if period, ok := e.ExtractPeriod(lower); ok {
		bag.Period = period
		bag.markExplicit(EntityPeriod)
	}

	if priceRange, ok := e.ExtractPriceRange(lower); ok {
		bag.PriceRange = priceRange
		bag.markExplicit(EntityPriceRange)
	}

	return bag
}

type dateMatch struct {
	position int
	date     time.Time
	relative bool
}

func (e *EntityExtractor) ExtractDates(text string, now time.Time) []time.Time {
	matches := e.dateMatches(text, now)
	dates := make([]time.Time, 0, len(matches))
	for _, m := range matches {
		dates = append(dates, m.date)
	}
	return dates
}

// dateMatches returns every ISO and relative date in text order.
func (e *EntityExtractor) dateMatches(text string, now time.Time) []dateMatch {
	text = strings.ToLower(text)
	today := StartOfDay(now)
	var matches []dateMatch

	for _, loc := range isoDatePattern.FindAllStringIndex(text, -1) {
		parsed, err := time.ParseInLocation("2006-01-02", text[loc[0]:loc[1]], now.Location())
		if err != nil {
			continue
		}
		matches = append(matches, dateMatch{position: loc[0], date: parsed})
	}

	for _, rel := range e.relativeDates {
		for _, loc := range rel.pattern.FindAllStringIndex(text, -1) {
			matches = append(matches, dateMatch{position: loc[0], date: rel.resolve(today), relative: true})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].position < matches[j].position
	})

	return matches
}

func (e *EntityExtractor) ExtractRoomType(text string) (string, bool) {
	text = strings.ToLower(text)
	for _, roomType := range e.roomTypes {
		if strings.Contains(text, roomType) {
			return strings.ToUpper(roomType[:1]) + roomType[1:], true
		}
	}
	return DefaultRoomType, false
}

func (e *EntityExtractor) ExtractGuests(text string) (int, bool) {
	text = strings.ToLower(text)

	if m := guestPattern.FindStringSubmatch(text); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			return n, true
		}
	}

	// date digits must not be read as a head count
	stripped := isoDatePattern.ReplaceAllString(text, " ")
	if m := standaloneIntRegex.FindStringSubmatch(stripped); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	return DefaultGuests, false
}

func (e *EntityExtractor) ExtractPeriod(text string) (string, bool) {
	text = strings.ToLower(text)
	for _, p := range e.periods {
		if strings.Contains(text, p.phrase) {
			return p.token, true
		}
	}
	return DefaultPeriod, false
}

func (e *EntityExtractor) ExtractPriceRange(text string) (PriceRange, bool) {
	text = strings.ToLower(text)
	for _, bucket := range e.rangeOrder {
		for _, keyword := range e.priceRanges[bucket] {
			if strings.Contains(text, keyword) {
				return bucket, true
			}
		}
	}
	return PriceRangeAny, false
}

// ApplyHints overlays caller supplied context values on top of the text
// extraction. Unknown keys and unusable values are ignored.
func (e *EntityExtractor) ApplyHints(bag EntityBag, hints map[string]interface{}) EntityBag {
	if len(hints) == 0 {
		return bag
	}

	overlay := EntityBag{}

	if raw, ok := hints[EntityRoomType].(string); ok && strings.TrimSpace(raw) != "" {
		if roomType, found := e.ExtractRoomType(raw); found {
			overlay.RoomType = roomType
		} else {
			overlay.RoomType = strings.TrimSpace(raw)
		}
		overlay.markExplicit(EntityRoomType)
	}

	if guests, ok := hintInt(hints[EntityGuests]); ok && guests >= 1 {
		overlay.Guests = guests
		overlay.markExplicit(EntityGuests)
	}

	if raw, ok := hints[EntityPeriod].(string); ok && raw != "" {
		if period, found := e.ExtractPeriod(strings.ReplaceAll(raw, "_", " ")); found {
			overlay.Period = period
			overlay.markExplicit(EntityPeriod)
		}
	}

	return bag.Merge(overlay)
}

func hintInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		return parsed, err == nil
	case fmt.Stringer:
		parsed, err := strconv.Atoi(n.String())
		return parsed, err == nil
	}
	return 0, false
}
