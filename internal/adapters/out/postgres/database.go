package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"fulfillment/internal/adapters/out/postgres/fulfillmentrepo"
	"fulfillment/internal/adapters/out/postgres/labelstore"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a postgres:// connection URL.
func DSN(host, port, user, password, dbName, sslMode string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   host + ":" + port,
		Path:   "/" + dbName,
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{sslMode}}.Encode()
	}
	return u.String()
}

// Open creates the database when it does not exist yet, connects and migrates.
func Open(dsn string) (*gorm.DB, error) {
	if err := ensureDatabase(dsn); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the console uses. Fulfillments are
// migrated before the tracking and line item tables that reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&fulfillmentrepo.FulfillmentDTO{},
		&fulfillmentrepo.LineItemDTO{},
		&trackingrepo.TrackingInfoDTO{},
		&labelstore.LabelDocumentDTO{},
	)
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	sqlDB, err := sql.Open("postgres", parsed.String())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err = sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
