package kind

import "testing"

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("20260115")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year != 2026 || d.Month != 1 || d.Day != 15 {
		t.Fatalf("unexpected date: %+v", d)
	}
	if got := d.String(); got != "20260115" {
		t.Fatalf("String round trip: got %q", got)
	}
}

func TestParseDateWrongLength(t *testing.T) {
	if _, err := ParseDate("2026-01-15"); err == nil {
		t.Fatal("expected an error for a non-basic-form date")
	}
}

func TestParseDateTimeRoundTrip(t *testing.T) {
	dt, err := ParseDateTime("20260115T133045")
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	if dt.Hour != 13 || dt.Min != 30 || dt.Sec != 45 {
		t.Fatalf("unexpected time of day: %+v", dt)
	}
	if got := dt.String(); got != "20260115T133045" {
		t.Fatalf("String round trip: got %q", got)
	}
}

func TestParseDateTimeMissingSeparator(t *testing.T) {
	if _, err := ParseDateTime("20260115 133045"); err == nil {
		t.Fatal("expected an error when the T separator is missing")
	}
}

func TestDateCompareOrdering(t *testing.T) {
	earlier := Date{Year: 2026, Month: 1, Day: 1}
	later := Date{Year: 2026, Month: 6, Day: 1}
	if earlier.Compare(later) >= 0 {
		t.Fatal("expected earlier < later")
	}
	if later.Compare(earlier) <= 0 {
		t.Fatal("expected later > earlier")
	}
	if earlier.Compare(earlier) != 0 {
		t.Fatal("expected equal dates to compare 0")
	}
}

func TestDateTimeCompareFallsBackToTimeOfDay(t *testing.T) {
	sameDay := Date{Year: 2026, Month: 3, Day: 2}
	earlier := DateTime{Date: sameDay, Hour: 9, Min: 0, Sec: 0}
	later := DateTime{Date: sameDay, Hour: 17, Min: 30, Sec: 0}
	if earlier.Compare(later) >= 0 {
		t.Fatal("expected earlier time of day to compare less")
	}
}

func TestDateTimeCompareOrdersByMicrosecond(t *testing.T) {
	sameSecond := Date{Year: 2026, Month: 3, Day: 2}
	earlier := DateTime{Date: sameSecond, Hour: 9, Min: 0, Sec: 0, Micro: 100}
	later := DateTime{Date: sameSecond, Hour: 9, Min: 0, Sec: 0, Micro: 900}
	if earlier.Compare(later) >= 0 {
		t.Fatal("expected lower microsecond to compare less")
	}
	if earlier.String() != later.String() {
		t.Fatal("expected microsecond differences not to surface in String()")
	}
}

func TestTodayAndNowAreSane(t *testing.T) {
	today := TodayDate()
	if today.Year < 2026 {
		t.Fatalf("unexpected year from TodayDate: %d", today.Year)
	}
	now := NowDateTime()
	if now.Year < 2026 {
		t.Fatalf("unexpected year from NowDateTime: %d", now.Year)
	}
}
