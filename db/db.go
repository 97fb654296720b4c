package db

import (
	_ "embed"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

// Tx wraps a transaction handle. The import pipeline does all of its work
// through a Tx so that surrogate keys assigned by earlier inserts are
// visible to later lookups in the same run, while nothing becomes durable
// until the closure returns.
type Tx struct{ *gorm.DB }

// ImportTx runs fn inside a single transaction. If fn returns an error the
// transaction rolls back and the store is left untouched.
func (db *DB) ImportTx(fn func(tx *Tx) error) error {
	return db.Transaction(func(gdb *gorm.DB) error {
		return fn(&Tx{gdb})
	})
}
