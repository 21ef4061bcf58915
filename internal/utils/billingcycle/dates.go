package billingcycle

import "time"

// AddMonths advances a billing date by the given number of calendar months,
// clamping the day-of-month to the last day of the target month instead of
// letting the overflow roll into the following month (time.AddDate would
// turn Jan 31 + 1 month into Mar 2/3). Jan 31 therefore advances to
// Feb 28, or Feb 29 in a leap year.
func AddMonths(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, d.Location())

	last := lastDayOfMonth(target.Year(), target.Month())
	if day > last {
		day = last
	}

	h, m, s := d.Clock()
	return time.Date(target.Year(), target.Month(), day, h, m, s, d.Nanosecond(), d.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextBillingDate returns the billing date one cycle after the given one.
func NextBillingDate(d time.Time) time.Time {
	return AddMonths(d, 1)
}
