// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
    (default: habitpair.db for sqlite, required for postgres)
  - TimeZone: IANA zone that decides "today" (default: UTC)
  - StaticDir: directory served under /static/ (optional)
  - Person1Name, Person2Name: names for the default habit
  - WriteVersion: write version.json to this path and exit

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-tz             Time zone
	-static         Static asset directory
	-person1        Default habit person 1
	-person2        Default habit person 2
	-c              YAML config file
	-write-version  version.json output path

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	TIME_ZONE        → -tz
	STATIC_DIR       → -static
	PERSON1_NAME     → -person1
	PERSON2_NAME     → -person2
	HABITPAIR_CONFIG → -c

A .env file in the working directory is loaded first. It never overrides a
variable that is already set.

# Config File

Settings missing from both flags and environment come from the YAML file,
then from the defaults:

	port: 8080
	database_type: postgres
	database_url: postgres://habitpair@localhost/habitpair?sslmode=disable
	time_zone: Europe/Warsaw
	person1_name: Ann
	person2_name: Ben

# Validation

ParseFlags returns an error if:

  - the port is outside 1-65535 or PORT is not a number
  - the database type is not sqlite or postgres
  - postgres is selected without a database URL
  - the time zone is unknown
*/
package cliparse
