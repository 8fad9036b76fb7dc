package tui

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naveenspark/islendingabok/pkg/client"
)

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// parseSearch splits search input into a name and an optional trailing date
// token: "YYYY", "MM.YYYY" or "DD.MM.YYYY".
func parseSearch(input string) client.FindQuery {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return client.FindQuery{}
	}

	q := client.FindQuery{}
	last := fields[len(fields)-1]
	if y, m, d, ok := parseDate(last); ok {
		q.BirthYear, q.BirthMonth, q.BirthDay = y, m, d
		fields = fields[:len(fields)-1]
	}
	q.Name = strings.Join(fields, " ")
	return q
}

func parseDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return 0, 0, 0, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	year = nums[len(nums)-1]
	if year < 1000 || year > 9999 {
		return 0, 0, 0, false
	}
	if len(nums) >= 2 {
		month = nums[len(nums)-2]
		if month > 12 {
			return 0, 0, 0, false
		}
	}
	if len(nums) == 3 {
		day = nums[0]
		if day > 31 {
			return 0, 0, 0, false
		}
	}
	return year, month, day, true
}
