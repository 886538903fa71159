// Package utils provides identifier helpers shared by the catalog.
//
// Functions:
//   - GenerateID: Returns a short lowercase slug built from a title.
//     Input: string (title)
//     Output: string ([a-z0-9]+, or an 8-hex fallback)
//   - BuildInitials: Returns the uppercase initials used to name uploaded images.
//     Input: string (title)
//     Output: string ([A-Z0-9]{1,20}, or an 8-hex fallback)
//   - GenerateUUID / ShortToken: random identifiers.
//   - SanitizeFilename: Returns a log-safe version of a client supplied filename.
//
// Used by the page handlers and the upload workflow.
package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxInitials = 20

var (
	letterRuns    = regexp.MustCompile(`\p{L}+`)
	notLowerAlnum = regexp.MustCompile(`[^a-z0-9]`)
	notUpperAlnum = regexp.MustCompile(`[^A-Z0-9]`)
	unsafeName    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

func GenerateUUID() string {
	return uuid.New().String()
}

// ShortToken returns the first 8 hex characters of a fresh random UUID.
func ShortToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func GenerateID(title string) string {
	if strings.TrimSpace(title) == "" {
		return ShortToken()
	}
	id := firstLetters(title, strings.ToLower)
	id = notLowerAlnum.ReplaceAllString(id, "")
	if id == "" {
		return ShortToken()
	}
	return id
}

func BuildInitials(title string) string {
	if strings.TrimSpace(title) == "" {
		return ShortToken()
	}
	initials := firstLetters(title, strings.ToUpper)
	initials = notUpperAlnum.ReplaceAllString(initials, "")
	if len(initials) > maxInitials {
		initials = initials[:maxInitials]
	}
	if initials == "" {
		return ShortToken()
	}
	return initials
}

// firstLetters concatenates the first rune of every maximal run of Unicode
// letters in s, after applying caseFn to it.
func firstLetters(s string, caseFn func(string) string) string {
	var b strings.Builder
	for _, run := range letterRuns.FindAllString(s, -1) {
		for _, r := range run {
			b.WriteString(caseFn(string(r)))
			break
		}
	}
	return b.String()
}

func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeName.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}
