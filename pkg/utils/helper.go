package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GeneratePlaceholderRegistration creates a registration for walk-in vehicles
// whose plate was not supplied at the gate.
func GeneratePlaceholderRegistration() string {
	now := time.Now().UTC()

	// Format: WALKIN-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("WALKIN-%s-%s-%s", datePart, timePart, randomPart)
}
