// Package naming builds candidate file stems for batch renames.
package naming

import (
	"fmt"
	"strings"
)

const (
	separator      = "_"
	fallbackPrefix = "renamed_file_"
)

// Slice is a 1-based inclusive character range over a stem.
type Slice struct {
	Start int
	End   int
}

// Valid reports whether the range is structurally usable: positive start, start <= end.
func (s Slice) Valid() bool {
	return s.Start > 0 && s.Start <= s.End
}

func (s Slice) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// Apply returns the characters of stem covered by the range. A start past the end
// of the stem yields "", and End is clamped to the stem length.
func (s Slice) Apply(stem string) string {
	runes := []rune(stem)
	if s.Start < 1 || s.Start > len(runes) || s.Start > s.End {
		return ""
	}
	end := s.End
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[s.Start-1 : end])
}

// Counter renders n zero-padded to width digits.
func Counter(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// Compose joins the non-empty fragments [slice of stem, desired, padded counter]
// with underscores. slice may be nil.
func Compose(stem string, slice *Slice, desired string, counter, width int) string {
	padded := Counter(counter, width)

	parts := make([]string, 0, 3)
	if slice != nil {
		if frag := slice.Apply(stem); frag != "" {
			parts = append(parts, frag)
		}
	}
	if desired != "" {
		parts = append(parts, desired)
	}
	if padded != "" {
		parts = append(parts, padded)
	}

	name := strings.Join(parts, separator)
	if name == "" {
		return fallbackPrefix + padded
	}
	return name
}
