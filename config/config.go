package config

import (
	"os"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	IdentityShared = "shared"
	IdentityUnique = "unique"

	SlotSelectFirst  = "first"
	SlotSelectStrict = "strict"
)

type Config struct {
	DBDriver   string
	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Port           string
	JWTSecret      string
	CookieSecure   bool
	AllowedOrigins []string
	LogLevel       string

	IdentityPolicy string
	SlotSelection  string
	ExportBucket   string
}

// LoadConfig reads the process environment. Unknown policy values fall back
// to the defaults so a typo never silently enables the stricter behavior.
func LoadConfig() Config {
	cfg := Config{
		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DBDSN:      getenv("DB_DSN", ":memory:"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		Port:           getenv("PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CookieSecure:   !strings.EqualFold(os.Getenv("COOKIE_SECURE"), "false"),
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getenv("LOG_LEVEL", "info"),

		IdentityPolicy: strings.ToLower(getenv("IDENTITY_POLICY", IdentityShared)),
		SlotSelection:  strings.ToLower(getenv("SLOT_SELECTION", SlotSelectFirst)),
		ExportBucket:   os.Getenv("EXPORT_BUCKET"),
	}

	if cfg.IdentityPolicy != IdentityUnique {
		cfg.IdentityPolicy = IdentityShared
	}
	if cfg.SlotSelection != SlotSelectStrict {
		cfg.SlotSelection = SlotSelectFirst
	}

	return cfg
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=disable"
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if len(v) == 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
