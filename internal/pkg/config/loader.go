package config

import (
	"fmt"
	"os"
	"time"
)

// LoadResult is the outcome of loading a single configuration value.
// Value holds the effective value, which is the default whenever the
// environment variable was unset, unparseable, or failed validation.
// FallbackApplied is true only when a set-but-invalid value was replaced;
// an unset variable silently resolves to the default.
//
// Example:
//
//	result := LoadEnvDuration("RUN_TIMEOUT", 20*time.Minute, ValidatePositiveDuration)
//	timeout := result.Value.(time.Duration)
//	for _, w := range result.Warnings {
//	    logger.Warn("configuration fallback", slog.String("warning", w))
//	}
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString reads a string environment variable, returning the default
// when the variable is unset or empty. No validation is applied; use
// LoadEnvWithFallback when a validator is needed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback reads a string environment variable and validates it
// with the given validator (nil skips validation). A set value that fails
// validation is replaced by the default and reported through Warnings; the
// function itself never fails.
//
// Example:
//
//	result := LoadEnvWithFallback("POLL_SCHEDULE", "30 6 * * *", ValidateCronSchedule)
//	schedule := result.Value.(string)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%s'",
				envKey, value, err, defaultValue,
			)
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvDuration reads a Go duration string (e.g. "30s", "20m", "1h30m")
// from an environment variable. Parse or validation failures fall back to
// the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		warning := fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to default '%v'",
			envKey, valueStr, err, defaultValue,
		)
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%v'",
				envKey, valueStr, err, defaultValue,
			)
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvInt reads an integer environment variable. Parse or validation
// failures fall back to the default with a warning.
//
// Example:
//
//	result := LoadEnvInt("FETCH_PAGE_SIZE", 250, func(v int) error {
//	    return ValidateIntRange(v, 1, 1000)
//	})
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	var parsed int
	if _, err := fmt.Sscanf(valueStr, "%d", &parsed); err != nil {
		warning := fmt.Sprintf(
			"Invalid %s='%s': invalid integer format, falling back to default '%d'",
			envKey, valueStr, defaultValue,
		)
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			warning := fmt.Sprintf(
				"Invalid %s='%s': %v, falling back to default '%d'",
				envKey, valueStr, err, defaultValue,
			)
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{warning},
				FallbackApplied: true,
			}
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvBool reads a boolean environment variable. Accepted spellings are
// the ones strconv.ParseBool takes ("1", "t", "true", "0", "f", "false" in
// any case). Anything else falls back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	var parsed bool
	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		parsed = true
	case "0", "f", "F", "false", "FALSE", "False":
		parsed = false
	default:
		warning := fmt.Sprintf(
			"Invalid %s='%s': invalid boolean format, expected 'true' or 'false', falling back to default '%t'",
			envKey, valueStr, defaultValue,
		)
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{warning},
			FallbackApplied: true,
		}
	}

	return LoadResult{Value: parsed}
}
