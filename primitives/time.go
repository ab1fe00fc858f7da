package primitives

import "time"

// Time wraps time.Time so every public signature in the module speaks one
// consistent temporal type instead of leaking the standard library's.
type Time struct {
	value time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time { return Time{value: t} }

// Now returns the current UTC time.
func Now() Time { return Time{value: time.Now().UTC()} }

// Sub returns the duration t-u in fractional days.
func (t Time) Sub(u Time) Decimal {
	return NewDecimalFromFloat(t.value.Sub(u.value).Hours() / 24)
}

// Before reports whether t is strictly before u.
func (t Time) Before(u Time) bool { return t.value.Before(u.value) }

// After reports whether t is strictly after u.
func (t Time) After(u Time) bool { return t.value.After(u.value) }

// Equal reports whether t and u represent the same instant.
func (t Time) Equal(u Time) bool { return t.value.Equal(u.value) }

// Time returns the underlying time.Time value.
func (t Time) Time() time.Time { return t.value }

// String renders t using RFC3339.
func (t Time) String() string { return t.value.Format(time.RFC3339) }

// ExpirationDate is either a positive number of days from now or an
// absolute UTC instant. Both forms convert to a year fraction using a
// 365-day count, per spec §3.
type ExpirationDate struct {
	days   Positive
	at     Time
	isDays bool
}

// ExpirationInDays constructs an ExpirationDate from a day count measured
// from the moment time-to-expiration is evaluated.
func ExpirationInDays(days Positive) ExpirationDate {
	return ExpirationDate{days: days, isDays: true}
}

// ExpirationAt constructs an ExpirationDate from an absolute instant.
func ExpirationAt(at Time) ExpirationDate {
	return ExpirationDate{at: at, isDays: false}
}

// YearsFrom converts the expiration to a non-negative number of years,
// using now as the reference instant for the absolute-date form and
// DaysPerYear as the day count in both forms.
func (e ExpirationDate) YearsFrom(now Time) Positive {
	if e.isDays {
		years, _ := e.days.Div(MustPositive(DaysPerYear))
		return years
	}
	deltaDays := e.at.Sub(now)
	if deltaDays.IsNegative() {
		return Zero()
	}
	yearsDecimal, _ := deltaDays.Div(DaysPerYear)
	return MustPositive(yearsDecimal)
}

// IsAbsolute reports whether e was constructed from an absolute instant
// rather than a relative day count.
func (e ExpirationDate) IsAbsolute() bool { return !e.isDays }

// Equal reports whether e and other describe the same expiration: both
// relative with equal day counts, or both absolute at the same instant.
// Decimal/Positive wrap *big.Int, so comparing ExpirationDate with == would
// compare pointer identity rather than value; this is the correct
// value-equality check strategies use to confirm their legs share an
// expiration.
func (e ExpirationDate) Equal(other ExpirationDate) bool {
	if e.isDays != other.isDays {
		return false
	}
	if e.isDays {
		return e.days.Equal(other.days)
	}
	return e.at.Equal(other.at)
}

// Years converts the expiration to years using the current wall-clock
// time as the reference instant for the absolute-date form. Equivalent to
// YearsFrom(Now()); the Days(d) form is reference-instant independent
// (it always returns d/365 regardless of when it's evaluated), matching
// spec §3's day-count definition.
func (e ExpirationDate) Years() Positive { return e.YearsFrom(Now()) }

// AsTime resolves the expiration to an absolute instant, using now as the
// reference point for the relative day-count form. Used where a caller
// needs a concrete timestamp (e.g. serializing a chain snapshot) regardless
// of which form the expiration was constructed with.
func (e ExpirationDate) AsTime(now Time) Time {
	if !e.isDays {
		return e.at
	}
	offset := time.Duration(e.days.Float64() * float64(24*time.Hour))
	return Time{value: now.value.Add(offset)}
}
