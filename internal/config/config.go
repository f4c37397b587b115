package config

import "os"

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	// JWTSecret signs locally issued HS256 tokens.
	JWTSecret string

	// JWKSURL, when set, additionally accepts RS256 tokens signed by an
	// external identity provider.
	JWKSURL string

	// StrictCheckIn creates a unique index on (studentId, courseId, day)
	// so concurrent duplicate check-ins are rejected by the database
	// instead of only by the lookup-before-insert guard.
	StrictCheckIn bool

	// AllowOrigins is a comma-separated list for CORS; defaults to the
	// local frontend dev server.
	AllowOrigins string
}

func Load() Config {
	return Config{
		Port:          getenv("PORT", "2083"),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "classdb"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret"),
		JWKSURL:       os.Getenv("AUTH_JWKS_URL"),
		StrictCheckIn: os.Getenv("MONGO_STRICT_CHECKIN") == "true",
		AllowOrigins:  getenv("ALLOW_ORIGINS", "http://localhost:5173"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
