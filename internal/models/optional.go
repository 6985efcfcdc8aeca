package models

import "time"

// StringValue unwraps an optional string field.
func StringValue(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// TimeValue unwraps an optional timestamp field.
func TimeValue(p *time.Time) (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	return *p, true
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
