package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataDir    string       `json:"data_dir" yaml:"data_dir" toml:"data_dir" envconfig:"DATA_DIR"`
	Cache      bool         `json:"cache" yaml:"cache" toml:"cache" envconfig:"CACHE"`
	ReportType []string     `json:"report_type" yaml:"report_type" toml:"report_type" envconfig:"REPORT_TYPE" validate:"dive,oneof=csv json pdf xlsx"`
	AWS        AWSConfig    `json:"aws" yaml:"aws" toml:"aws" envconfig:"AWS"`
	Cities     []CityConfig `json:"cities" yaml:"cities" toml:"cities" ignored:"true" validate:"dive"`
}

// AWSConfig holds the defaults used by S3-backed cities.
type AWSConfig struct {
	Profile string `json:"profile" yaml:"profile" toml:"profile" envconfig:"PROFILE"`
	Region  string `json:"region" yaml:"region" toml:"region" envconfig:"REGION"`
	Bucket  string `json:"bucket" yaml:"bucket" toml:"bucket" envconfig:"BUCKET"`
}

// CityConfig describes where one city's trips live and which optional columns it carries.
// csv and sqlite cities need a path, s3 cities a key; the bucket may come from the aws section.
type CityConfig struct {
	Name         string        `json:"name" yaml:"name" toml:"name" validate:"required"`
	Aliases      []string      `json:"aliases" yaml:"aliases" toml:"aliases"`
	Source       string        `json:"source" yaml:"source" toml:"source" validate:"omitempty,oneof=csv s3 sqlite"`
	Path         string        `json:"path" yaml:"path" toml:"path" validate:"required_unless=Source s3"`
	Bucket       string        `json:"bucket" yaml:"bucket" toml:"bucket"`
	Key          string        `json:"key" yaml:"key" toml:"key" validate:"required_if=Source s3"`
	Table        string        `json:"table" yaml:"table" toml:"table"`
	HasGender    bool          `json:"has_gender" yaml:"has_gender" toml:"has_gender"`
	HasBirthYear bool          `json:"has_birth_year" yaml:"has_birth_year" toml:"has_birth_year"`
	Columns      ColumnMapping `json:"columns" yaml:"columns" toml:"columns"`
}

// ColumnMapping renames the logical trip columns for sources that use different headers.
// Empty fields fall back to the defaults.
type ColumnMapping struct {
	StartTime    string `json:"start_time" yaml:"start_time" toml:"start_time"`
	EndTime      string `json:"end_time" yaml:"end_time" toml:"end_time"`
	StartStation string `json:"start_station" yaml:"start_station" toml:"start_station"`
	EndStation   string `json:"end_station" yaml:"end_station" toml:"end_station"`
	UserType     string `json:"user_type" yaml:"user_type" toml:"user_type"`
	Gender       string `json:"gender" yaml:"gender" toml:"gender"`
	BirthYear    string `json:"birth_year" yaml:"birth_year" toml:"birth_year"`
}
