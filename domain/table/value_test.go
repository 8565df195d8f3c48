package table

import (
	"testing"
	"time"
)

func TestNewStringValueEmptyIsMissing(t *testing.T) {
	if !NewStringValue("").IsMissing {
		t.Error("empty string should coerce to missing")
	}
	if NewStringValue("North").IsMissing {
		t.Error("non-empty string marked missing")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"missing", NewMissingValue(), ""},
		{"whole numeric", NewNumericValue(1500), "1500"},
		{"fractional numeric", NewNumericValue(99.5), "99.5"},
		{"string", NewStringValue("Online"), "Online"},
		{"timestamp", NewTimestampValue(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)), "2024-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueTypePredicates(t *testing.T) {
	if !NewNumericValue(1).IsNumeric() || NewNumericValue(1).IsString() {
		t.Error("numeric predicates wrong")
	}
	if !NewTimestampValue(time.Now()).IsTimestamp() {
		t.Error("timestamp predicate wrong")
	}
	if NewMissingValue().IsNumeric() || NewMissingValue().IsString() || NewMissingValue().IsTimestamp() {
		t.Error("missing value claims a concrete type")
	}
}
