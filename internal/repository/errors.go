// Package repository implements data access over database/sql. Sentinel
// errors let handlers map store failures onto the HTTP error taxonomy
// without inspecting driver details themselves.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as registering an email twice. Translates to HTTP 409.
var ErrDuplicate = errors.New("already exists")

// ErrBadReference is returned when a write references a row that does
// not exist (foreign key violation). Translates to HTTP 400.
var ErrBadReference = errors.New("referenced resource does not exist")

// MySQL vendor error numbers matched by translateErr.
const (
	mysqlDuplicateEntry = 1062
	mysqlFKViolation    = 1452
)

// translateErr maps driver-level errors onto the repository sentinels.
// Unrecognized errors pass through unchanged.
func translateErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlFKViolation:
			return ErrBadReference
		}
	}
	return err
}
