package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var errBadDate = errors.New("invalid date, use YYYY-MM-DD or YYYY-MM-DD HH:MM")

// ParseTags splits a comma separated list, trimming blanks and duplicates.
func ParseTags(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// JoinTags is the inverse of ParseTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// ParseDate reads an optional date in loc. A bare date means end of that
// day. Blank input returns nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, s, loc); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, errBadDate
	}
	t = t.Add(24*time.Hour - time.Minute)
	return &t, nil
}

// FormatDate renders t for editing in a date field.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Hour() == 23 && t.Minute() == 59 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	_, err := ParseDate(s, time.Local)
	return err
}
