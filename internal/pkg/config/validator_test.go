package config

import (
	"testing"
	"time"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "daily morning", schedule: "30 6 * * *", wantErr: false},
		{name: "every six hours", schedule: "0 */6 * * *", wantErr: false},
		{name: "weekdays only", schedule: "0 9 * * 1-5", wantErr: false},
		{name: "empty", schedule: "", wantErr: true},
		{name: "too few fields", schedule: "30 6 *", wantErr: true},
		{name: "nonsense", schedule: "often", wantErr: true},
		{name: "out of range minute", schedule: "75 6 * * *", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCronSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "utc", timezone: "UTC", wantErr: false},
		{name: "us eastern", timezone: "America/New_York", wantErr: false},
		{name: "empty", timezone: "", wantErr: true},
		{name: "offset instead of name", timezone: "+09:00", wantErr: true},
		{name: "typo", timezone: "America/NewYork", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTimezone(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		min      time.Duration
		max      time.Duration
		wantErr  bool
	}{
		{name: "in range", duration: 20 * time.Minute, min: time.Minute, max: time.Hour, wantErr: false},
		{name: "at minimum", duration: time.Minute, min: time.Minute, max: time.Hour, wantErr: false},
		{name: "at maximum", duration: time.Hour, min: time.Minute, max: time.Hour, wantErr: false},
		{name: "below minimum", duration: time.Second, min: time.Minute, max: time.Hour, wantErr: true},
		{name: "above maximum", duration: 2 * time.Hour, min: time.Minute, max: time.Hour, wantErr: true},
		{name: "inverted range", duration: time.Minute, min: time.Hour, max: time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.duration, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDuration(%v, %v, %v) error = %v, wantErr %v", tt.duration, tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIntRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr bool
	}{
		{name: "in range", value: 250, min: 1, max: 1000, wantErr: false},
		{name: "at minimum", value: 1024, min: 1024, max: 65535, wantErr: false},
		{name: "at maximum", value: 65535, min: 1024, max: 65535, wantErr: false},
		{name: "below minimum", value: 80, min: 1024, max: 65535, wantErr: true},
		{name: "above maximum", value: 70000, min: 1024, max: 65535, wantErr: true},
		{name: "inverted range", value: 5, min: 10, max: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntRange(tt.value, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIntRange(%d, %d, %d) error = %v, wantErr %v", tt.value, tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		wantErr  bool
	}{
		{name: "positive", duration: 20 * time.Minute, wantErr: false},
		{name: "one nanosecond", duration: time.Nanosecond, wantErr: false},
		{name: "zero", duration: 0, wantErr: true},
		{name: "negative", duration: -time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration(tt.duration)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositiveDuration(%v) error = %v, wantErr %v", tt.duration, err, tt.wantErr)
			}
		})
	}
}
