package models

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// UniversityType classifies a listing. The numeric values are part of the
// stored data and must not change.
type UniversityType int

const (
	Undefined UniversityType = 0
	Public    UniversityType = 1
	Private   UniversityType = 5
	Online    UniversityType = 10
	Community UniversityType = 18
	Other     UniversityType = 24
)

// UniversityTypes lists the selectable types in display order.
var UniversityTypes = []UniversityType{Public, Private, Community, Online, Other}

var universityTypeNames = map[UniversityType]string{
	Undefined: "Undefined",
	Public:    "Public",
	Private:   "Private",
	Online:    "Online",
	Community: "Community",
	Other:     "Other",
}

func (t UniversityType) String() string {
	if name, ok := universityTypeNames[t]; ok {
		return name
	}
	return universityTypeNames[Undefined]
}

func (t UniversityType) IsDefined() bool {
	_, ok := universityTypeNames[t]
	return ok
}

// LookupUniversityType resolves s as a number or a case-insensitive name.
// ok is false when s names no defined type.
func LookupUniversityType(s string) (UniversityType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Undefined, false
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		t := UniversityType(n)
		return t, t.IsDefined()
	}
	for t, name := range universityTypeNames {
		if strings.EqualFold(name, s) {
			return t, true
		}
	}
	return Undefined, false
}

// ParseUniversityType never fails: numeric strings must name a defined
// value, names match case-insensitively, and anything else is Undefined.
func ParseUniversityType(s string) UniversityType {
	t, ok := LookupUniversityType(s)
	if !ok {
		return Undefined
	}
	return t
}

func (t UniversityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts strings, integers and any other token; tokens that do
// not resolve to a defined type decode as Undefined instead of failing.
func (t *UniversityType) UnmarshalJSON(data []byte) error {
	*t = Undefined
	var token any
	if err := json.Unmarshal(data, &token); err != nil {
		return nil
	}
	switch v := token.(type) {
	case string:
		*t = ParseUniversityType(v)
	case float64:
		n, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 32)
		if err != nil {
			return nil
		}
		if parsed := UniversityType(n); parsed.IsDefined() {
			*t = parsed
		}
	}
	return nil
}
