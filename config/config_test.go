package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Port != "8000" || c.StoreDriver != "mongo" || c.PaymentTTL != 15*time.Minute || c.SweepSchedule != "@every 1m" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "http://localhost:9000" {
		t.Fatalf("cors origins = %v", c.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("PAYMENT_TTL", "20m")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.StoreDriver != "memory" || len(c.CORSOrigins) != 2 || c.PaymentTTL != 20*time.Minute {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "restored after the test")
	os.Unsetenv("SECRET_KEY")
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing SECRET_KEY to fail")
	}
}
