package barwatch

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// TagFormat is the compact YYYYMMDD form used to key snapshots and to
// date-stamp archived files.
const TagFormat = "20060102"

// headerDateFormat is the long form custodian headers use, e.g. "13 February 2026".
const headerDateFormat = "2 January 2006"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Tag formats the date as a compact YYYYMMDD snapshot tag.
func (d Date) Tag() string { return d.time().Format(TagFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

var isoDateRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// ParseDate parses a Date from a string. It accepts the ISO form
// ("2026-02-13"), the compact tag form ("20260213"), and the long header
// form custodians print ("13 February 2026").
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)
	for _, layout := range []string{DateFormat, TagFormat, headerDateFormat} {
		if on, err := time.Parse(layout, str); err == nil {
			return NewDate(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want %q, %q or %q", str, DateFormat, TagFormat, headerDateFormat)
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// NormalizeDateTag turns a raw as-of date from a document header into a
// YYYYMMDD snapshot tag. It accepts whatever ParseDate accepts, tolerating
// trailing text after an ISO date. An empty or unreadable value falls back
// to today's tag, so a snapshot is never left untagged.
func NormalizeDateTag(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Today().Tag()
	}
	if m := isoDateRE.FindStringSubmatch(raw); m != nil {
		return m[1] + m[2] + m[3]
	}
	if d, err := ParseDate(raw); err == nil {
		return d.Tag()
	}
	return Today().Tag()
}

// UnmarshalJSON implements the json specific way to unmarshal a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file: %w", str, err)
	}
	*d = on
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshal/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
