package compliance

import (
	"strings"
	"time"
)

// TimezoneInfo describes the IANA zone used for a US state's contact-hour
// checks. States spanning multiple zones use the zone covering the larger
// share of their population.
type TimezoneInfo struct {
	Name        string
	ObservesDST bool
}

func (t TimezoneInfo) Location() (*time.Location, error) {
	return time.LoadLocation(t.Name)
}

var stateTimezones = map[string]TimezoneInfo{
	"AL": {Name: "America/Chicago", ObservesDST: true},
	"AK": {Name: "America/Anchorage", ObservesDST: true},
	"AZ": {Name: "America/Phoenix", ObservesDST: false},
	"AR": {Name: "America/Chicago", ObservesDST: true},
	"CA": {Name: "America/Los_Angeles", ObservesDST: true},
	"CO": {Name: "America/Denver", ObservesDST: true},
	"CT": {Name: "America/New_York", ObservesDST: true},
	"DE": {Name: "America/New_York", ObservesDST: true},
	"DC": {Name: "America/New_York", ObservesDST: true},
	"FL": {Name: "America/New_York", ObservesDST: true},
	"GA": {Name: "America/New_York", ObservesDST: true},
	"HI": {Name: "Pacific/Honolulu", ObservesDST: false},
	"ID": {Name: "America/Denver", ObservesDST: true},
	"IL": {Name: "America/Chicago", ObservesDST: true},
	"IN": {Name: "America/New_York", ObservesDST: true},
	"IA": {Name: "America/Chicago", ObservesDST: true},
	"KS": {Name: "America/Chicago", ObservesDST: true},
	"KY": {Name: "America/New_York", ObservesDST: true},
	"LA": {Name: "America/Chicago", ObservesDST: true},
	"ME": {Name: "America/New_York", ObservesDST: true},
	"MD": {Name: "America/New_York", ObservesDST: true},
	"MA": {Name: "America/New_York", ObservesDST: true},
	"MI": {Name: "America/New_York", ObservesDST: true},
	"MN": {Name: "America/Chicago", ObservesDST: true},
	"MS": {Name: "America/Chicago", ObservesDST: true},
	"MO": {Name: "America/Chicago", ObservesDST: true},
	"MT": {Name: "America/Denver", ObservesDST: true},
	"NE": {Name: "America/Chicago", ObservesDST: true},
	"NV": {Name: "America/Los_Angeles", ObservesDST: true},
	"NH": {Name: "America/New_York", ObservesDST: true},
	"NJ": {Name: "America/New_York", ObservesDST: true},
	"NM": {Name: "America/Denver", ObservesDST: true},
	"NY": {Name: "America/New_York", ObservesDST: true},
	"NC": {Name: "America/New_York", ObservesDST: true},
	"ND": {Name: "America/Chicago", ObservesDST: true},
	"OH": {Name: "America/New_York", ObservesDST: true},
	"OK": {Name: "America/Chicago", ObservesDST: true},
	"OR": {Name: "America/Los_Angeles", ObservesDST: true},
	"PA": {Name: "America/New_York", ObservesDST: true},
	"RI": {Name: "America/New_York", ObservesDST: true},
	"SC": {Name: "America/New_York", ObservesDST: true},
	"SD": {Name: "America/Chicago", ObservesDST: true},
	"TN": {Name: "America/Chicago", ObservesDST: true},
	"TX": {Name: "America/Chicago", ObservesDST: true},
	"UT": {Name: "America/Denver", ObservesDST: true},
	"VT": {Name: "America/New_York", ObservesDST: true},
	"VA": {Name: "America/New_York", ObservesDST: true},
	"WA": {Name: "America/Los_Angeles", ObservesDST: true},
	"WV": {Name: "America/New_York", ObservesDST: true},
	"WI": {Name: "America/Chicago", ObservesDST: true},
	"WY": {Name: "America/Denver", ObservesDST: true},
}

// Resolve returns the timezone record for a two-letter state code,
// case-insensitively. Unknown codes return ok == false.
func Resolve(stateCode string) (TimezoneInfo, bool) {
	info, ok := stateTimezones[strings.ToUpper(strings.TrimSpace(stateCode))]
	return info, ok
}
