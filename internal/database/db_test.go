package database

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConfigDSN(t *testing.T) {
	tests := []struct {
		name       string
		user, pass string
		wantPrefix string
	}{
		{"with password", "app", "secret", "app:secret@tcp(db.local:3307)/hotel?"},
		{"without password", "app", "", "app@tcp(db.local:3307)/hotel?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := Config(tt.user, tt.pass, "db.local", "3307", "hotel").FormatDSN()
			if !strings.HasPrefix(dsn, tt.wantPrefix) {
				t.Errorf("dsn = %q, want prefix %q", dsn, tt.wantPrefix)
			}
			if !strings.Contains(dsn, "parseTime=true") {
				t.Errorf("dsn %q does not enable parseTime", dsn)
			}
		})
	}
}

func TestConfigReadsTimesAsUTC(t *testing.T) {
	cfg := Config("app", "", "localhost", "3306", "hotel")
	if cfg.Loc != time.UTC {
		t.Errorf("Loc = %v, want UTC", cfg.Loc)
	}
	if cfg.Addr != "localhost:3306" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestOpenUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := Open(ctx, "app", "", "127.0.0.1", "1", "hotel")
	if err == nil {
		_ = db.Close()
		t.Fatal("expected an error for a closed port")
	}
}
