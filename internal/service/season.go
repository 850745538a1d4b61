package service

import "time"

// SeasonForMonth maps a month to its northern-hemisphere season.
func SeasonForMonth(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}
