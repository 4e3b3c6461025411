package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort          = "8080"
	defaultCarrierBaseURL    = "https://apis.fedex.com"
	defaultCarrierTimeout    = 30 * time.Second
	defaultShipDateTimezone  = "America/New_York"
	defaultBatchConcurrency  = 8
	defaultShipperCountry    = shipment.CountryUnitedStates
	defaultPostgresSSLMode   = "disable"
	defaultCarrierPackaging  = shipment.PackagingYours
	defaultPublicBaseURLHost = "http://localhost"
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	PublicBaseURL string

	CarrierBaseURL          string
	CarrierClientID         string
	CarrierClientSecret     string
	CarrierAccountNumber    string
	CarrierDefaultPackaging string
	CarrierHTTPTimeout      time.Duration

	Shipper shipment.ShipperFields

	ShipDateTimezone string

	PlatformAdminURL       string
	PlatformAccessToken    string
	PlatformNotifyCustomer bool

	LabelBatchConcurrency   int
	TrackingRefreshSchedule string
}

// LoadConfig reads the process environment once. A .env file in the working
// directory is loaded first when present; variables already set win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:      env("HTTP_PORT", defaultHTTPPort),
		DBHost:        env("DB_HOST", "localhost"),
		DBPort:        env("DB_PORT", "5432"),
		DBUser:        env("DB_USER", "postgres"),
		DBPassword:    env("DB_PASSWORD", ""),
		DBName:        env("DB_NAME", "fulfillment"),
		DBSslMode:     env("DB_SSLMODE", defaultPostgresSSLMode),
		PublicBaseURL: env("PUBLIC_BASE_URL", ""),

		CarrierBaseURL:          env("CARRIER_BASE_URL", defaultCarrierBaseURL),
		CarrierClientID:         env("CARRIER_CLIENT_ID", ""),
		CarrierClientSecret:     env("CARRIER_CLIENT_SECRET", ""),
		CarrierAccountNumber:    env("CARRIER_ACCOUNT_NUMBER", ""),
		CarrierDefaultPackaging: env("CARRIER_DEFAULT_PACKAGING", defaultCarrierPackaging),

		Shipper: shipment.ShipperFields{
			PersonName:  env("SHIPPER_NAME", ""),
			CompanyName: env("SHIPPER_COMPANY", ""),
			Phone:       env("SHIPPER_PHONE", ""),
			Street:      env("SHIPPER_STREET", ""),
			City:        env("SHIPPER_CITY", ""),
			State:       env("SHIPPER_STATE", ""),
			PostalCode:  env("SHIPPER_POSTAL_CODE", ""),
			Country:     env("SHIPPER_COUNTRY", defaultShipperCountry),
		},

		ShipDateTimezone: env("SHIP_DATE_TIMEZONE", defaultShipDateTimezone),

		PlatformAdminURL:    env("PLATFORM_ADMIN_URL", ""),
		PlatformAccessToken: env("PLATFORM_ACCESS_TOKEN", ""),

		TrackingRefreshSchedule: env("TRACKING_REFRESH_SCHEDULE", jobs.DefaultTrackingRefreshSchedule),
	}

	var err error
	var parseErrs []error

	if cfg.CarrierHTTPTimeout, err = envDuration("CARRIER_HTTP_TIMEOUT", defaultCarrierTimeout); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if cfg.PlatformNotifyCustomer, err = envBool("PLATFORM_NOTIFY_CUSTOMER", false); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if cfg.LabelBatchConcurrency, err = envInt("LABEL_BATCH_CONCURRENCY", defaultBatchConcurrency); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if _, err = cfg.ShipDateLocation(); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if err = errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = defaultPublicBaseURLHost + ":" + cfg.HTTPPort
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	return cfg, nil
}

// DSN returns the postgres connection URL.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ShipDateLocation returns the timezone "today" is computed in.
func (c Config) ShipDateLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ShipDateTimezone)
	if err != nil {
		return nil, fmt.Errorf("SHIP_DATE_TIMEZONE: %w", err)
	}
	return loc, nil
}

// PlatformEnabled reports whether tracking should be mirrored to the platform.
func (c Config) PlatformEnabled() bool {
	return c.PlatformAdminURL != "" && c.PlatformAccessToken != ""
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// envDuration accepts Go durations ("45s") or a plain number of seconds.
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
