package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 5 * time.Second

// Config builds the driver configuration for the snapshot database.  Times
// are read back as UTC time.Time values.
func Config(user, pass, host, port, name string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Collation = "utf8mb4_general_ci"
	cfg.Timeout = pingTimeout
	return cfg
}

// Open connects to MySQL and verifies the connection.  The pool stays small:
// one user saves one snapshot row at a time.
func Open(ctx context.Context, user, pass, host, port, name string) (*sql.DB, error) {
	connector, err := mysql.NewConnector(Config(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
