package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Token parameters (secret, issuer, audience,
// lifetime) live here rather than as package constants so that the auth
// layer receives them by injection and nothing is hard-coded into the binary.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign tokens
    JWTIssuer    string // iss claim stamped into every token
    JWTAudience  string // aud claim stamped into every token
    TokenTTLSec  int    // token lifetime in seconds
    BcryptCost   int    // bcrypt cost for password hashing
    AuditLogPath string // path of the append-only order audit log
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Values with sane
// defaults (issuer, audience, token lifetime) fall back when unset.
func Load() Config {
    return Config{
        Env:          must("APP_ENV"),      // environment (dev/test/prod)
        Port:         must("APP_PORT"),     // port to bind the HTTP server
        DBUser:       must("DB_USER"),      // database user
        DBPass:       os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:       must("DB_HOST"),      // database host
        DBPort:       must("DB_PORT"),      // database port
        DBName:       must("DB_NAME"),      // database name
        JWTSecret:    must("JWT_SECRET"),   // secret used for signing tokens
        JWTIssuer:    getenv("JWT_ISSUER", "atelier-artist-api"),
        JWTAudience:  getenv("JWT_AUDIENCE", "atelier-artist-webapp"),
        TokenTTLSec:  atoiDefault("JWT_EXPIRY", 86400), // 24 hours
        BcryptCost:   mustInt("BCRYPT_COST"),           // bcrypt cost factor
        AuditLogPath: getenv("AUDIT_LOG_PATH", "logs/order_log.txt"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// atoiDefault reads an optional integer variable, falling back to def when
// the variable is unset or unparsable.
func atoiDefault(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return n
}
