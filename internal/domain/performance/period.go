package performance

import "time"

const dateLayout = "2006-01-02"

// Period tags every evaluation generated from the same date range with the
// same value, e.g. "2024-01-01_2024-03-31".
func Period(start, end time.Time) string {
	return start.Format(dateLayout) + "_" + end.Format(dateLayout)
}
