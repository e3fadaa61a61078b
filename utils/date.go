package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// JalaliDate formats t as "year/month/day" on the Solar Hijri calendar,
// without zero padding.
func JalaliDate(t time.Time) string {
	pt := ptime.New(t)
	return fmt.Sprintf("%d/%d/%d", pt.Year(), int(pt.Month()), pt.Day())
}

// JalaliMonth extracts the month from a date produced by JalaliDate.
func JalaliMonth(date string) (int, bool) {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
