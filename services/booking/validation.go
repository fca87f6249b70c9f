package booking

import (
	"time"

	"karigar/utils"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// validateSlot checks the wire formats of a requested date and time.
func validateSlot(date, timeOfDay string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return utils.NewAppError(utils.CodeValidation, "invalid date %q, expected YYYY-MM-DD", date)
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return utils.NewAppError(utils.CodeValidation, "invalid time %q, expected HH:MM", timeOfDay)
	}
	return nil
}

// dateInPast reports whether date falls strictly before today. The comparison
// is date-only; time of day never matters here.
func dateInPast(date string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	return d.Before(today)
}
