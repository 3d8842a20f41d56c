// Package format turns raw upstream statistics into display strings.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`PT(\d+H)?(\d+M)?(\d+S)?`)

// ViewCount renders n with one decimal and a K/M/B suffix, or as a plain
// integer below one thousand.
func ViewCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return strconv.FormatInt(n, 10)
}

// ParseViewCount reads the decimal string the upstream API uses for counts.
func ParseViewCount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Duration renders an ISO-8601 style "PT#H#M#S" token as H:MM:SS, or M:SS
// when there are no hours. Tokens that do not match yield "0:00".
func Duration(token string) string {
	m := durationRe.FindStringSubmatch(token)
	if m == nil {
		return "0:00"
	}

	h := component(m[1])
	min := component(m[2])
	s := component(m[3])

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, s)
	}
	return fmt.Sprintf("%d:%02d", min, s)
}

func component(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw[:len(raw)-1])
	if err != nil {
		return 0
	}
	return v
}
