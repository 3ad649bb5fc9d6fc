package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidField is returned when a duration field is not a non-negative integer.
var ErrInvalidField = errors.New("invalid duration field")

// Duration is an hours/minutes/seconds triple. Minutes and seconds are not
// clamped below 60; they add to the total as-is.
type Duration struct {
	Hours   int `yaml:"hours"`
	Minutes int `yaml:"minutes"`
	Seconds int `yaml:"seconds"`
}

// Total returns the duration flattened to whole seconds.
func (d Duration) Total() int {
	return Flatten(d.Hours, d.Minutes, d.Seconds)
}

// Strings returns the decimal text forms of the three fields.
func (d Duration) Strings() (hours, minutes, seconds string) {
	return strconv.Itoa(d.Hours), strconv.Itoa(d.Minutes), strconv.Itoa(d.Seconds)
}

// Flatten converts hours, minutes and seconds to a total number of seconds.
// Callers with untrusted input use TotalSeconds instead.
func Flatten(hours, minutes, seconds int) int {
	return ((hours*60)+minutes)*60 + seconds
}

// TotalSeconds flattens the three fields, rejecting negative fields and any
// combination whose total does not fit in an int.
func TotalSeconds(hours, minutes, seconds int) (int, error) {
	switch {
	case hours < 0:
		return 0, rangeError("hours", hours, "is negative")
	case minutes < 0:
		return 0, rangeError("minutes", minutes, "is negative")
	case seconds < 0:
		return 0, rangeError("seconds", seconds, "is negative")
	case minutes > (math.MaxInt-seconds)/60:
		return 0, rangeError("minutes", minutes, "is too large")
	case hours > (math.MaxInt-seconds-minutes*60)/3600:
		return 0, rangeError("hours", hours, "is too large")
	}
	return Flatten(hours, minutes, seconds), nil
}

// Validate reports the first field that is negative or overflows the total.
func (d Duration) Validate() error {
	_, err := TotalSeconds(d.Hours, d.Minutes, d.Seconds)
	return err
}

func rangeError(field string, value int, reason string) error {
	text := strconv.Itoa(value)
	return &FieldError{
		Field: field,
		Text:  text,
		Err:   fmt.Errorf("%w: %s %s", ErrInvalidField, text, reason),
	}
}

// Split normalises a total number of seconds into a Duration with minutes
// and seconds below 60.
func Split(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// Format renders a total number of seconds as zero-padded hour, minute and
// second strings (e.g. 9000 -> "02", "30", "00").
func Format(total int) (hh, mm, ss string) {
	d := Split(total)
	return fmt.Sprintf("%02d", d.Hours), fmt.Sprintf("%02d", d.Minutes), fmt.Sprintf("%02d", d.Seconds)
}

// FormatClock formats seconds as HH:MM:SS (e.g. 00:01:00).
func FormatClock(total int) string {
	hh, mm, ss := Format(total)
	return hh + ":" + mm + ":" + ss
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(total int) string {
	d := Split(total)
	return fmt.Sprintf("%d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// ParseField parses a single duration field as typed by the user.
// Surrounding whitespace is ignored; anything other than a non-negative
// integer is rejected.
func ParseField(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidField)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidField, trimmed)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidField, trimmed)
	}
	return n, nil
}

// FieldError reports which of the three fields failed to parse.
type FieldError struct {
	Field string
	Text  string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseHMS parses three duration fields and flattens them. Either all three
// parse and a total is returned, or an error naming the first bad field is.
func ParseHMS(hours, minutes, seconds string) (int, error) {
	fields := []struct {
		name string
		text string
	}{
		{"hours", hours},
		{"minutes", minutes},
		{"seconds", seconds},
	}

	var values [3]int
	for i, f := range fields {
		n, err := ParseField(f.text)
		if err != nil {
			return 0, &FieldError{Field: f.name, Text: f.text, Err: err}
		}
		values[i] = n
	}

	total, err := TotalSeconds(values[0], values[1], values[2])
	if err != nil {
		// Report the text as typed, not its parsed value
		var fe *FieldError
		if errors.As(err, &fe) {
			for _, f := range fields {
				if f.name == fe.Field {
					fe.Text = f.text
				}
			}
		}
		return 0, err
	}
	return total, nil
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
func ParseTimeToSeconds(timeStr string) (int, error) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")

	switch len(parts) {
	case 3:
		if total, err := ParseHMS(parts[0], parts[1], parts[2]); err == nil {
			return total, nil
		}
	case 2:
		if total, err := ParseHMS("0", parts[0], parts[1]); err == nil {
			return total, nil
		}
	case 1:
		if secs, err := ParseField(parts[0]); err == nil {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}
