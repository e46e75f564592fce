package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Astemirdum/book-circle/lending/internal/metadata"
	"github.com/Astemirdum/book-circle/pkg/circuit_breaker"
	"github.com/Astemirdum/book-circle/pkg/db"
	"github.com/Astemirdum/book-circle/pkg/kafka"
	"github.com/Astemirdum/book-circle/pkg/logger"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LENDING_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LENDING_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"10s"`
}

type Lending struct {
	LoanPeriod time.Duration `yaml:"loanPeriod" envconfig:"LENDING_LOAN_PERIOD" default:"336h"`
	// StaleAfter is the age after which an open handoff is reported to its parties.
	StaleAfter    time.Duration `yaml:"staleAfter" envconfig:"LENDING_STALE_AFTER" default:"72h"`
	SweepInterval time.Duration `yaml:"sweepInterval" envconfig:"LENDING_SWEEP_INTERVAL" default:"1h"`
}

type Config struct {
	Server         HTTPServer `yaml:"server"`
	Database       db.Config  `yaml:"db"`
	Kafka          kafka.Config
	Lending        Lending
	Metadata       metadata.Config
	CircuitBreaker circuit_breaker.Config
	Log            logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		// options override env defaults
		for _, op := range ops {
			op(&config)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	cfg.Database.Password = "***"
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
