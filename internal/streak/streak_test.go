package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, time.March, 10, 15, 4, 0, 0, time.Local)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []string{day(0)}, 1},
		{"yesterday only", []string{day(-1)}, 1},
		{"three consecutive ending today", []string{day(0), day(-1), day(-2)}, 3},
		{"gap after today", []string{day(0), day(-2)}, 1},
		{"broken two days ago", []string{day(-2), day(-3), day(-4)}, 0},
		{"unordered input", []string{day(-2), day(0), day(-1)}, 3},
		{"duplicates collapse", []string{day(0), day(0), day(-1), day(-1)}, 2},
		{"older run ignored past first gap", []string{day(-1), day(-3), day(-4), day(-5), day(-6)}, 1},
		{"garbage ignored", []string{"not-a-date", day(0), day(-1)}, 2},
		{"future date breaks", []string{day(1), day(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.dates, now))
		})
	}
}

func TestCalculateStaleAlwaysZero(t *testing.T) {
	for offset := -2; offset > -40; offset-- {
		dates := []string{day(offset), day(offset - 1), day(offset - 2)}
		assert.Zero(t, Calculate(dates, now), "latest offset %d", offset)
	}
}

func TestCalculateAcrossMonthBoundary(t *testing.T) {
	first := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	dates := []string{"2024-02-28", "2024-02-29", "2024-03-01"}
	assert.Equal(t, 3, Calculate(dates, first))
}

func TestLongest(t *testing.T) {
	assert.Zero(t, Longest(nil))
	assert.Equal(t, 1, Longest([]string{day(0)}))
	assert.Equal(t, 4, Longest([]string{day(-1), day(-3), day(-4), day(-5), day(-6)}))
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"2024-01-03", "bad", "2024-01-01", "2024-01-03"})
	assert.Equal(t, []string{"2024-01-01", "2024-01-03"}, got)
}
