package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gradeflow/gradeflow/internal/report"
)

type Config struct {
	HTTPAddr string
	LogLevel string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	Policy Policy
}

// Policy holds the grading tunables that live in the YAML policy file.
type Policy struct {
	LateMultipliers []float64         `yaml:"lateMultipliers"`
	GraceMinutes    int               `yaml:"graceMinutes"`
	RoundDigits     int               `yaml:"roundDigits"`
	Bins            []report.GradeBin `yaml:"bins"`
}

func (p Policy) Grace() time.Duration {
	return time.Duration(p.GraceMinutes) * time.Minute
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		Policy:        defaultPolicy(),
	}
}

func defaultPolicy() Policy {
	return Policy{
		LateMultipliers: []float64{0.9, 0.8, 0.6},
		GraceMinutes:    5,
		RoundDigits:     5,
	}
}

// LoadPolicy overlays the YAML policy file, when given, onto the defaults
// already present in the config.
func (c *Config) LoadPolicy(path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("policy file: %w", err)
	}
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("policy file %s: %w", path, err)
	}
	if p.LateMultipliers != nil {
		c.Policy.LateMultipliers = p.LateMultipliers
	}
	if p.GraceMinutes > 0 {
		c.Policy.GraceMinutes = p.GraceMinutes
	}
	if p.RoundDigits > 0 {
		c.Policy.RoundDigits = p.RoundDigits
	}
	if len(p.Bins) > 0 {
		c.Policy.Bins = p.Bins
	}
	return nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
