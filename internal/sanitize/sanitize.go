// Package sanitize cleans and validates product fields before they reach the
// store. Errors are collected as (field, message) pairs rather than returned
// one at a time, so a form can show every problem at once.
package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxDegreeLength = 100
	maxCampusLength = 55
)

// FieldError is a single validation failure. Field uses the form path, e.g.
// "Product.Campuses[2]"; an empty Field is a page-level error.
type FieldError struct {
	Field   string
	Message string
}

type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// For returns the messages recorded for field, in insertion order.
func (e Errors) For(field string) []string {
	var out []string
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

// CleanList trims every entry and drops the ones left empty. A nil input
// yields an empty, non-nil slice.
func CleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ValidateDegrees records every offending entry of a degree list.
func ValidateDegrees(errs *Errors, field string, degrees []string, displayName string) {
	if len(degrees) == 0 {
		errs.Add(field, fmt.Sprintf("At least one %s is required.", strings.ToLower(displayName)))
		return
	}
	for i, degree := range degrees {
		path := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(degree) == "" {
			errs.Add(path, fmt.Sprintf("%s #%d cannot be empty.", displayName, i+1))
			continue
		}
		if utf8.RuneCountInString(degree) > maxDegreeLength {
			errs.Add(path, fmt.Sprintf("%s #%d cannot exceed %d characters.", displayName, i+1, maxDegreeLength))
		}
	}
}

// ValidateCampuses records every offending campus and keeps scanning.
// Used by the create flow.
func ValidateCampuses(errs *Errors, field string, campuses []string) {
	if len(campuses) == 0 {
		errs.Add(field, "At least one campus is required.")
		return
	}
	for i := range campuses {
		if msg := campusProblem(campuses, i); msg != "" {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), msg)
		}
	}
}

// ValidateCampusesFirst stops at the first offending campus and reports
// whether the list passed. Used by the update flow.
func ValidateCampusesFirst(errs *Errors, field string, campuses []string) bool {
	if len(campuses) == 0 {
		errs.Add(field, "At least one campus is required.")
		return false
	}
	for i := range campuses {
		if msg := campusProblem(campuses, i); msg != "" {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), msg)
			return false
		}
	}
	return true
}

func campusProblem(campuses []string, i int) string {
	campus := campuses[i]
	if strings.TrimSpace(campus) == "" {
		return fmt.Sprintf("Campus #%d cannot be empty.", i+1)
	}
	if utf8.RuneCountInString(campus) > maxCampusLength {
		return fmt.Sprintf("Campus #%d cannot exceed %d characters.", i+1, maxCampusLength)
	}
	return ""
}
