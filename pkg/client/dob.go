package client

import "fmt"

// DateOfBirth assembles the dob search parameter from optional parts, where a
// zero value means the part was not given.
//
// With a name the parts are joined by periods and may be partial:
// "DD.MM.YYYY", "MM.YYYY" or "YYYY". Without a name day and month are
// required and the parts are concatenated with no separator, e.g. "15071973".
func DateOfBirth(name string, year, month, day int) (string, error) {
	sep := ""
	if name != "" {
		sep = "."
	}
	if name == "" && (day == 0 || month == 0) {
		return "", &ClientError{Msg: "missing part of date of birth", Err: ErrIncompleteDOB}
	}

	if year == 0 {
		return "", nil
	}
	dob := fmt.Sprint(year)
	if month == 0 {
		return dob, nil
	}
	dob = fmt.Sprintf("%02d", month) + sep + dob
	if day == 0 {
		return dob, nil
	}
	return fmt.Sprintf("%02d", day) + sep + dob, nil
}
