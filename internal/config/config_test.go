package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "SESSION_TTL", "OCR_ENGINE", "OCR_LANGUAGES", "MAX_UPLOAD_BYTES", "ADMIN_PASSWORD"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.SessionTTL != 5*time.Minute {
		t.Fatalf("SessionTTL = %v, want 5m", c.SessionTTL)
	}
	if c.DBDriver != "mysql" || c.OCREngine != "tesseract" {
		t.Fatalf("unexpected driver/engine: %q/%q", c.DBDriver, c.OCREngine)
	}
	if len(c.OCRLanguages) != 1 || c.OCRLanguages[0] != "eng" {
		t.Fatalf("OCRLanguages = %v", c.OCRLanguages)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("OCR_LANGUAGES", "eng,deu")
	t.Setenv("OCR_PSM", "6")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("REDIS_DB", "3")

	c := Load()
	if c.SessionTTL != 90*time.Second {
		t.Fatalf("SessionTTL = %v", c.SessionTTL)
	}
	if c.DBDriver != "sqlite" {
		t.Fatalf("DBDriver = %q, want sqlite", c.DBDriver)
	}
	if strings.Join(c.OCRLanguages, "+") != "eng+deu" || c.OCRPSM != 6 {
		t.Fatalf("ocr settings = %v psm=%d", c.OCRLanguages, c.OCRPSM)
	}
	if c.MaxUploadBytes != 1024 || c.RedisDB != 3 {
		t.Fatalf("upload=%d redisDB=%d", c.MaxUploadBytes, c.RedisDB)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppPort:        "8080",
			DBDriver:       "sqlite",
			SQLitePath:     "x.db",
			OCREngine:      "static",
			SessionTTL:     time.Minute,
			MaxUploadBytes: 1,
			AdminPassword:  "secret",
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"no port":        func(c *Config) { c.AppPort = "" },
		"bad driver":     func(c *Config) { c.DBDriver = "postgres" },
		"mysql missing":  func(c *Config) { c.DBDriver = "mysql" },
		"bad mysql port": func(c *Config) { c.DBDriver, c.MySQLHost, c.MySQLDB, c.MySQLUser, c.MySQLPort = "mysql", "h", "d", "u", "notaport" },
		"bad engine":     func(c *Config) { c.OCREngine = "aws" },
		"zero ttl":       func(c *Config) { c.SessionTTL = 0 },
		"zero upload":    func(c *Config) { c.MaxUploadBytes = 0 },
		"no admin pass":  func(c *Config) { c.AdminPassword = "" },
	}
	for name, mut := range cases {
		c := valid()
		mut(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "v"}
	want := "u:p@tcp(db:3306)/v?parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
