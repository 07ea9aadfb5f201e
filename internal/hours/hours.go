package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// cutoffMinutes is how long before close we stop routing calls to the
// ordering agent.
const cutoffMinutes = 15

// Shift is one open/close window in "HH:MM" 24h format.
type Shift struct {
	Open  string `yaml:"open" json:"open"`
	Close string `yaml:"close" json:"close"`
}

// Schedule maps weekday name ("Monday".."Sunday") to that day's shifts.
// A day with no shifts is closed.
type Schedule map[string][]Shift

// DefaultSchedule mirrors the restaurant's posted hours: closed Monday,
// lunch and dinner service the rest of the week.
func DefaultSchedule() Schedule {
	lunch := Shift{Open: "11:00", Close: "15:00"}
	dinner := Shift{Open: "17:00", Close: "21:30"}
	lateDinner := Shift{Open: "17:00", Close: "22:00"}

	return Schedule{
		"Monday":    {},
		"Tuesday":   {lunch, dinner},
		"Wednesday": {lunch, dinner},
		"Thursday":  {lunch, dinner},
		"Friday":    {lunch, lateDinner},
		"Saturday":  {lunch, lateDinner},
		"Sunday":    {lunch, dinner},
	}
}

// PastCutoff reports whether now falls outside every ordering window for
// the current day. A shift stops accepting orders cutoffMinutes before it
// closes.
func (s Schedule) PastCutoff(now time.Time) bool {
	shifts := s[now.Weekday().String()]
	current := now.Hour()*60 + now.Minute()

	for _, shift := range shifts {
		start, err := parseClock(shift.Open)
		if err != nil {
			continue
		}
		end, err := parseClock(shift.Close)
		if err != nil {
			continue
		}
		if current >= start && current < end-cutoffMinutes {
			return false
		}
	}
	return true
}

func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock value %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
