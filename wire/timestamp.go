package wire

import (
	"fmt"
	"time"
)

// TicksPerSecond is the protocol's timestamp resolution: 1 tick is
// 1/10,000 of a second.
const TicksPerSecond = 10000

// EpochOffsetTicks is the number of protocol ticks between 0001-01-01
// (the .NET-style epoch these captures use) and the Unix epoch.
const EpochOffsetTicks uint64 = 621355968000000

// DecodeTimestamp converts a 64-bit tick count (already read
// big-endian off the wire) into a Go time and an "ok" flag. Values
// below EpochOffsetTicks decode as absent, matching the source
// behavior of treating pre-epoch ticks as missing data rather than an
// error.
func DecodeTimestamp(ticks uint64) (time.Time, bool) {
	if ticks < EpochOffsetTicks {
		return time.Time{}, false
	}
	unixTicks := ticks - EpochOffsetTicks
	totalSeconds := int64(unixTicks / TicksPerSecond)
	subTickRemainder := unixTicks % TicksPerSecond
	nanos := int64(subTickRemainder) * (int64(time.Second) / TicksPerSecond)
	days := totalSeconds / 86400
	secOfDay := totalSeconds % 86400
	if secOfDay < 0 {
		secOfDay += 86400
		days--
	}
	y, m, d := civilFromDays(days)
	hh := secOfDay / 3600
	mm := (secOfDay % 3600) / 60
	ss := secOfDay % 60
	return time.Date(y, time.Month(m), d, int(hh), int(mm), int(ss), int(nanos), time.UTC), true
}

// FormatTimestamp renders a decoded timestamp as the protocol's
// canonical text form.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// civilFromDays is a direct port of Howard Hinnant's days-from-civil
// inverse algorithm (http://howardhinnant.github.io/date_algorithms.html),
// converting a day count relative to the Unix epoch (1970-01-01) into
// a proleptic-Gregorian (year, month, day) triple.
func civilFromDays(z int64) (year int, month int, day int) {
	z += 719468
	era := z
	if z < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365 // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	d := doy - (153*mp+2)/5 + 1              // [1, 31]
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func init() {
	// civilFromDays is only valid for day counts representable as the
	// int64 arithmetic above; guard against silent overflow by
	// touching a known fixed point once at package init.
	if y, m, d := civilFromDays(0); fmt.Sprintf("%04d-%02d-%02d", y, m, d) != "1970-01-01" {
		panic("wire: civilFromDays arithmetic regression")
	}
}
