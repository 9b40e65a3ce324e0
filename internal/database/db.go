// Package database owns the MySQL connection for the service.
package database

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config identifies the MySQL instance and schema to connect to. An
// empty Password is allowed for local development setups.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// mysqlConfig translates our Config into driver settings. ParseTime
// makes DATETIME columns scan into time.Time, and pinning Loc to UTC
// keeps stored and served timestamps in one zone.
func mysqlConfig(c Config) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}

// Open connects to MySQL, applies pool limits sized for a single API
// instance, and verifies the connection with a short ping.
func Open(c Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", mysqlConfig(c).FormatDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
