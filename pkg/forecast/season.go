package forecast

import "time"

type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

var priceSeasonalMultipliers = map[Season]float64{
	SeasonWinter: 0.8,
	SeasonSpring: 1.0,
	SeasonSummer: 1.3,
	SeasonFall:   1.1,
}

var occupancySeasonalMultipliers = map[Season]float64{
	SeasonWinter: 0.8,
	SeasonSpring: 1.0,
	SeasonSummer: 1.2,
	SeasonFall:   1.1,
}

func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

func PriceSeasonalMultiplier(s Season) float64 {
	if m, ok := priceSeasonalMultipliers[s]; ok {
		return m
	}
	return 1.0
}

func OccupancySeasonalMultiplier(s Season) float64 {
	if m, ok := occupancySeasonalMultipliers[s]; ok {
		return m
	}
	return 1.0
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

type HolidayCalendar interface {
	HolidayName(t time.Time) (string, bool)
}

type monthDay struct {
	month time.Month
	day   int
}

type fixedHolidays map[monthDay]string

func DefaultHolidays() HolidayCalendar {
	return fixedHolidays{
		{time.January, 1}:   "New Year's Day",
		{time.February, 14}: "Valentine's Day",
		{time.July, 4}:      "Independence Day",
		{time.October, 31}:  "Halloween",
		{time.December, 24}: "Christmas Eve",
		{time.December, 25}: "Christmas Day",
		{time.December, 31}: "New Year's Eve",
	}
}

func (h fixedHolidays) HolidayName(t time.Time) (string, bool) {
	name, ok := h[monthDay{t.Month(), t.Day()}]
	return name, ok
}
