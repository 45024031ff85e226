package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 3318
	DefaultSQLitePath  = "habitpair.db"
	DefaultTimeZone    = "UTC"
	DefaultDotEnvFile  = ".env"
	databaseTypeSQLite = "sqlite"
	databaseTypePG     = "postgres"
)

type Config struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`
	TimeZone     string `yaml:"time_zone"`
	StaticDir    string `yaml:"static_dir"`

	// Names for the habit created on first start
	Person1Name string `yaml:"person1_name"`
	Person2Name string `yaml:"person2_name"`

	// Set from flags only
	ConfigFile   string         `yaml:"-"`
	WriteVersion string         `yaml:"-"`
	Location     *time.Location `yaml:"-"`

	// Positional arguments left after the flags
	Args []string `yaml:"-"`
}

// ParseFlags builds the configuration. Each setting is taken from the first
// source that has it: CLI flag, environment variable, YAML config file,
// built-in default. A .env file in the working directory is loaded into the
// environment first without overriding variables that are already set.
func ParseFlags(args []string) (Config, error) {
	if err := loadDotEnv(DefaultDotEnvFile); err != nil {
		return Config{}, err
	}

	var flags Config

	fs := flag.NewFlagSet("habitpair", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.DatabaseURL, "d", "", "Database URL (file path for sqlite)")
	fs.StringVar(&flags.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Display
	fs.StringVar(&flags.TimeZone, "tz", "", "IANA time zone that decides today's date")
	fs.StringVar(&flags.StaticDir, "static", "", "Directory served under /static/")
	fs.StringVar(&flags.Person1Name, "person1", "", "First person's name for the default habit")
	fs.StringVar(&flags.Person2Name, "person2", "", "Second person's name for the default habit")

	fs.StringVar(&flags.ConfigFile, "c", "", "YAML config file")
	fs.StringVar(&flags.WriteVersion, "write-version", "", "Write version.json to this path and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:         DefaultPort,
		DatabaseType: databaseTypeSQLite,
		TimeZone:     DefaultTimeZone,
	}

	configFile := firstNonEmpty(flags.ConfigFile, os.Getenv("HABITPAIR_CONFIG"))
	if configFile != "" {
		file, err := loadFile(configFile)
		if err != nil {
			return Config{}, err
		}
		overlay(&cfg, file)
	}

	env, err := fromEnv()
	if err != nil {
		return Config{}, err
	}
	overlay(&cfg, env)
	overlay(&cfg, flags)

	cfg.ConfigFile = configFile
	cfg.WriteVersion = flags.WriteVersion
	cfg.Args = fs.Args()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func fromEnv() (Config, error) {
	var cfg Config
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	cfg.TimeZone = os.Getenv("TIME_ZONE")
	cfg.StaticDir = os.Getenv("STATIC_DIR")
	cfg.Person1Name = os.Getenv("PERSON1_NAME")
	cfg.Person2Name = os.Getenv("PERSON2_NAME")
	return cfg, nil
}

// overlay copies every non-zero setting of src onto dst
func overlay(dst *Config, src Config) {
	if src.Port != 0 {
		dst.Port = src.Port
	}
	dst.DatabaseURL = firstNonEmpty(src.DatabaseURL, dst.DatabaseURL)
	dst.DatabaseType = firstNonEmpty(src.DatabaseType, dst.DatabaseType)
	dst.TimeZone = firstNonEmpty(src.TimeZone, dst.TimeZone)
	dst.StaticDir = firstNonEmpty(src.StaticDir, dst.StaticDir)
	dst.Person1Name = firstNonEmpty(src.Person1Name, dst.Person1Name)
	dst.Person2Name = firstNonEmpty(src.Person2Name, dst.Person2Name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DatabaseType {
	case databaseTypeSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = DefaultSQLitePath
		}
	case databaseTypePG:
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unsupported database type %q (sqlite or postgres)", c.DatabaseType)
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	c.Location = loc

	return nil
}
