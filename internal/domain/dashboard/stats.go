package dashboard

import "time"

// Age buckets reported in the age distribution.
const (
	BucketUnder18 = "<18"
	Bucket18to30  = "18-30"
	Bucket31to50  = "31-50"
	BucketOver50  = ">50"
)

// TrendPercent compares today's figure against yesterday's. A flat zero
// stays 0; growth from zero reports as 100.
func TrendPercent(today, yesterday float64) float64 {
	if yesterday == 0 {
		if today > 0 {
			return 100
		}
		return 0
	}
	return (today - yesterday) / yesterday * 100
}

// Age returns full years between birth and now, counting the birthday itself
// as reached. Feb 29 birthdays roll over on Mar 1 in non-leap years.
func Age(birth, now time.Time) int {
	birth, now = birth.UTC(), now.UTC()
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func bucketFor(age int) string {
	switch {
	case age < 18:
		return BucketUnder18
	case age <= 30:
		return Bucket18to30
	case age <= 50:
		return Bucket31to50
	default:
		return BucketOver50
	}
}

// AgeDistribution buckets the given birth dates by age at now.
func AgeDistribution(birthDates []time.Time, now time.Time) map[string]int {
	dist := map[string]int{
		BucketUnder18: 0,
		Bucket18to30:  0,
		Bucket31to50:  0,
		BucketOver50:  0,
	}
	for _, bd := range birthDates {
		dist[bucketFor(Age(bd, now))]++
	}
	return dist
}

// DailyCount is one day of the weekly appointment series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeeklySeries expands a sparse date→count map into a dense 7-day series
// ending today. Dates are YYYY-MM-DD in UTC.
func WeeklySeries(counts map[string]int, today time.Time) []DailyCount {
	today = today.UTC()
	series := make([]DailyCount, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, DailyCount{Date: date, Count: counts[date]})
	}
	return series
}

// midnightUTC truncates t to the start of its UTC day.
func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
