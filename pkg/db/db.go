package db

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

type Config struct {
	Driver       Driver `yaml:"driver" envconfig:"DB_DRIVER" default:"postgres"`
	Host         string `yaml:"host" envconfig:"DB_HOST" default:"localhost"`
	Port         int    `yaml:"port" envconfig:"DB_PORT" default:"5432"`
	Username     string `yaml:"user" envconfig:"DB_USER" default:"postgres"`
	Password     string `yaml:"password" envconfig:"DB_PASSWORD"`
	NameDB       string `yaml:"dbname" envconfig:"DB_NAME" default:"lending"`
	SSLMode      string `yaml:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
	Path         string `yaml:"path" envconfig:"DB_PATH" default:"lending.db"`
	MaxOpenConns int    `yaml:"maxOpenConns" envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
}

func (c *Config) DSN() string {
	switch c.Driver {
	case DriverSQLite:
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.Path)
	default:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     c.NameDB,
			RawQuery: "sslmode=" + c.SSLMode,
		}
		return u.String()
	}
}

func (c *Config) sqlDriverName() string {
	if c.Driver == DriverSQLite {
		return "sqlite"
	}
	return "pgx"
}

// Placeholder returns the bind style the driver understands.
func Placeholder(d Driver) sq.PlaceholderFormat {
	if d == DriverSQLite {
		return sq.Question
	}
	return sq.Dollar
}

// NewDB opens the database, applies the embedded migrations and returns a ready pool.
func NewDB(ctx context.Context, cfg *Config, migrations fs.FS) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.sqlDriverName(), cfg.DSN())
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", cfg.Driver)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer; one connection keeps transactions serialized.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}
	if migrations != nil {
		if err := Migrate(db, cfg.Driver, migrations); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

func Migrate(db *sqlx.DB, driver Driver, migrations fs.FS) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	dialect := "postgres"
	if driver == DriverSQLite {
		dialect = "sqlite3"
	}
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "goose dialect")
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return errors.Wrap(err, "goose up")
	}
	return nil
}
