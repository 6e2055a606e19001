package domain

import "time"

// BirthDateLayout is the wire and storage format for birth dates.
const BirthDateLayout = "2006-01-02"

// AgeFromBirthDate returns the whole number of full years elapsed between
// birthDate ("YYYY-MM-DD") and now. It returns 0 and false when the date
// does not parse or lies in the future.
func AgeFromBirthDate(birthDate string, now time.Time) (int, bool) {
	born, err := time.Parse(BirthDateLayout, birthDate)
	if err != nil {
		return 0, false
	}
	if born.After(now) {
		return 0, false
	}

	age := now.Year() - born.Year()
	// Not yet had the birthday this year.
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}
