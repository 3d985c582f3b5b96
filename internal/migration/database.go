package migration

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"

	"csplay/internal/config"
)

// DatabaseManager manages the grade history database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// DSN returns the MySQL data source name; withDatabase=false connects to the server only
func (dm *DatabaseManager) DSN(withDatabase bool) string {
	db := dm.config.Database
	mc := mysql.NewConfig()
	mc.User = db.User
	mc.Passwd = db.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(db.Host, db.Port)
	mc.ParseTime = true
	if withDatabase {
		mc.DBName = db.Name
	}
	return mc.FormatDSN()
}

// Open ensures the history database exists and returns a pool connected to it
func (dm *DatabaseManager) Open(ctx context.Context) (*sql.DB, error) {
	if err := dm.EnsureDatabase(ctx); err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dm.DSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dm.config.Database.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", dm.config.Database.Name, err)
	}
	return db, nil
}

// EnsureDatabase checks if the history database exists and creates it if it doesn't
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context) error {
	dbName := dm.config.Database.Name

	// Connect to MySQL server (without specifying database)
	db, err := sql.Open("mysql", dm.DSN(false))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := dm.databaseExists(ctx, db, dbName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}
	if err := dm.createDatabase(ctx, db, dbName); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	// Identifiers cannot be bound as parameters
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// isValidDatabaseName allows only letters, digits, underscores and dashes
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return !(r == '_' || r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0
}
