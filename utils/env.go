package utils

import (
	"log"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// BusinessLocation loads the zone all slot math and validation run in.
// Falls back to UTC if the zone database misses the configured name.
func BusinessLocation() *time.Location {
	name := EnvOrDefault("TIME_ZONE", "Europe/London")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("warning: unknown TIME_ZONE %q, using UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
