package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price quote lifetimes, in seconds.
const (
	DefaultTTLSeconds = 300
	MinTTLSeconds     = 60
	MaxTTLSeconds     = 7 * 24 * 60 * 60
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// TTLConfig is a quote lifetime that has passed range checks.
type TTLConfig struct {
	Seconds  int
	Duration time.Duration
}

// NewTTLConfig rejects lifetimes outside the allowed window.
func NewTTLConfig(seconds int) (*TTLConfig, error) {
	if err := checkTTL(seconds); err != nil {
		return nil, err
	}
	return ttlOf(seconds), nil
}

// DefaultTTLConfig is the five minute quote lifetime.
func DefaultTTLConfig() *TTLConfig {
	return ttlOf(DefaultTTLSeconds)
}

func ttlOf(seconds int) *TTLConfig {
	return &TTLConfig{Seconds: seconds, Duration: time.Duration(seconds) * time.Second}
}

func checkTTL(seconds int) error {
	if seconds >= MinTTLSeconds && seconds <= MaxTTLSeconds {
		return nil
	}
	return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
}

// ParseTTL reads a lifetime written as whole seconds ("900") or as a Go
// duration ("15m", "1h30m") and returns it in seconds.
func ParseTTL(s string) (int, error) {
	s = strings.TrimSpace(s)
	seconds, atoiErr := strconv.Atoi(s)
	if atoiErr != nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid TTL %q: want seconds or a duration such as 15m", s)
		}
		seconds = int(d / time.Second)
	}
	if err := checkTTL(seconds); err != nil {
		return 0, err
	}
	return seconds, nil
}

// FormatAge renders how old a quote is, coarsest two units only:
// "45s", "5m", "1h30m", "2d3h".
func FormatAge(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < day:
		return twoUnits(int(d/time.Hour), "h", int(d%time.Hour/time.Minute), "m")
	default:
		return twoUnits(int(d/day), "d", int(d%day/time.Hour), "h")
	}
}

func twoUnits(major int, majorUnit string, minor int, minorUnit string) string {
	if minor == 0 {
		return strconv.Itoa(major) + majorUnit
	}
	return fmt.Sprintf("%d%s%d%s", major, majorUnit, minor, minorUnit)
}
