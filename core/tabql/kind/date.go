package kind

import (
	"fmt"
	"time"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
)

// Date is a calendar day, with no time-of-day component.
type Date struct {
	Year, Month, Day int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// Compare orders two dates chronologically.
func (d Date) Compare(o Date) int {
	a := d.Year*10000 + d.Month*100 + d.Day
	b := o.Year*10000 + o.Month*100 + o.Day
	return cmpInt(int64(a), int64(b))
}

// DateTime is a calendar day plus a time of day. Micro carries
// sub-second resolution for NOW()/DATETIME()'s current-instant capture
// (spec: microsecond resolution); it plays no part in String/ParseDateTime,
// since the ISO-8601 basic literal form (YYYYMMDDTHHMMSS) has no
// sub-second component — two DateTime values that only differ in Micro
// still format identically, but Compare still orders them correctly.
type DateTime struct {
	Date
	Hour, Min, Sec int
	Micro          int
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%sT%02d%02d%02d", dt.Date.String(), dt.Hour, dt.Min, dt.Sec)
}

// Compare orders two instants chronologically, down to the microsecond.
func (dt DateTime) Compare(o DateTime) int {
	if c := dt.Date.Compare(o.Date); c != 0 {
		return c
	}
	a := ((dt.Hour*100+dt.Min)*100+dt.Sec)*1000000 + dt.Micro
	b := ((o.Hour*100+o.Min)*100+o.Sec)*1000000 + o.Micro
	return cmpInt(int64(a), int64(b))
}

// TodayDate returns the current calendar date in local time.
func TodayDate() Date {
	y, m, d := time.Now().Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// NowDateTime returns the current instant in local time, at microsecond
// resolution.
func NowDateTime() DateTime {
	now := time.Now()
	y, m, d := now.Date()
	return DateTime{
		Date:  Date{Year: y, Month: int(m), Day: d},
		Hour:  now.Hour(),
		Min:   now.Minute(),
		Sec:   now.Second(),
		Micro: now.Nanosecond() / 1000,
	}
}

// ParseDate parses the ISO-8601 basic calendar form YYYYMMDD.
func ParseDate(s string) (Date, error) {
	if len(s) != 8 {
		return Date{}, tabqlerrors.NewQueryParse(0, s, "DATE literal must be YYYYMMDD")
	}
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%04d%02d%02d", &y, &m, &d); err != nil {
		return Date{}, tabqlerrors.Wrapf(err, "parse date %q", s)
	}
	return Date{Year: y, Month: m, Day: d}, nil
}

// ParseDateTime parses the ISO-8601 basic combined form
// YYYYMMDDTHHMMSS.
func ParseDateTime(s string) (DateTime, error) {
	if len(s) != 15 || s[8] != 'T' {
		return DateTime{}, tabqlerrors.NewQueryParse(0, s, "DATETIME literal must be YYYYMMDDTHHMMSS")
	}
	date, err := ParseDate(s[:8])
	if err != nil {
		return DateTime{}, err
	}
	var h, mi, se int
	if _, err := fmt.Sscanf(s[9:], "%02d%02d%02d", &h, &mi, &se); err != nil {
		return DateTime{}, tabqlerrors.Wrapf(err, "parse datetime %q", s)
	}
	return DateTime{Date: date, Hour: h, Min: mi, Sec: se}, nil
}
