package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"equipment-loans/loans"
)

// config holds the defaults for the persistent flags. Values come from the
// environment, optionally populated from a .env file in the working directory.
type config struct {
	dbPath        string
	contactDomain string
	seed          bool
	verbose       bool
}

func loadConfig() config {
	_ = godotenv.Load()
	return config{
		dbPath:        env("LOANS_DB", ""),
		contactDomain: env("LOANS_CONTACT_DOMAIN", loans.DefaultContactDomain),
		seed:          envBool("LOANS_SEED", true),
		verbose:       envBool("LOANS_VERBOSE", false),
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
