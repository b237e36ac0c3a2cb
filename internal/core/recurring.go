package core

import "time"

// Expand materializes the concrete occurrences of a recurring template that
// fall on or before horizonEnd. One instance is produced per period boundary
// starting at RecurringStartDate, at the template's cadence:
//
//	weekly  +7 days
//	monthly +1 calendar month, day-of-month clamped to the target month's
//	        last day when the anchor day overflows (e.g. the 31st)
//	yearly  +1 year, Feb 29 clamped to Feb 28 in non-leap years
//
// Each instance copies amount, category, description and type from the
// template, carries IsRecurring=false, and gets the boundary as its date.
// The result is a pure function of the inputs: expanding twice with the same
// horizon yields identical slices. A start date past the horizon yields an
// empty expansion.
func Expand(template Transaction, horizonEnd Date) ([]Transaction, error) {
	if !template.IsRecurring {
		return nil, ErrNotRecurring
	}
	if err := template.Frequency.Validate(); err != nil {
		return nil, err
	}

	start := template.RecurringStartDate
	var out []Transaction
	for n := 0; ; n++ {
		due := occurrence(start, template.Frequency, n)
		if due.After(horizonEnd.Time) {
			break
		}
		inst := template
		inst.ID = ""
		inst.Date = due
		inst.IsRecurring = false
		inst.Frequency = ""
		inst.RecurringStartDate = Date{}
		out = append(out, inst)
	}
	return out, nil
}

// occurrence returns the n-th period boundary (n=0 is the start date itself).
// Monthly and yearly boundaries are anchored to the start date's day-of-month
// so a clamped month does not shift later boundaries.
func occurrence(start Date, freq Frequency, n int) Date {
	switch freq {
	case Weekly:
		return Date{Time: start.AddDate(0, 0, 7*n)}
	case Monthly:
		months := (start.Year()*12 + start.Month() - 1) + n
		year := months / 12
		month := months%12 + 1
		return NewDate(year, month, clampDay(year, month, start.Day()))
	case Yearly:
		year := start.Year() + n
		return NewDate(year, start.Month(), clampDay(year, start.Month(), start.Day()))
	default:
		return start
	}
}

// clampDay keeps day within the number of days year/month actually has.
func clampDay(year, month, day int) int {
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}
