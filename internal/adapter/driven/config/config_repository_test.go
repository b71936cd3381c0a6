package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
data_dir: data
cache: true
report_type: [csv, pdf]
aws:
  profile: analytics
  region: us-east-1
cities:
  - name: chicago
    path: chicago.csv
    has_gender: true
    has_birth_year: true
  - name: washington
    source: s3
    bucket: bikeshare-raw
    key: washington.csv
`

const tomlConfig = `
data_dir = "/srv/bikeshare"
report_type = ["json"]

[[cities]]
name = "new york city"
aliases = ["nyc"]
source = "sqlite"
path = "nyc.db"
table = "trips"
has_gender = true

[cities.columns]
start_time = "starttime"
`

const jsonConfig = `{"data_dir": "/tmp/x", "cities": [{"name": "chicago", "path": "chicago.csv"}]}`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "bikeshare.yaml", yamlConfig)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.True(t, cfg.Cache)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, "analytics", cfg.AWS.Profile)
	require.Len(t, cfg.Cities, 2)
	assert.True(t, cfg.Cities[0].HasGender)
	assert.Equal(t, "s3", cfg.Cities[1].Source)
	assert.Equal(t, "bikeshare-raw", cfg.Cities[1].Bucket)
}

func TestLoadConfigFile_TOML(t *testing.T) {
	path := write(t, t.TempDir(), "bikeshare.toml", tomlConfig)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/bikeshare", cfg.DataDir)
	require.Len(t, cfg.Cities, 1)
	city := cfg.Cities[0]
	assert.Equal(t, []string{"nyc"}, city.Aliases)
	assert.Equal(t, "sqlite", city.Source)
	assert.Equal(t, "trips", city.Table)
	assert.Equal(t, "starttime", city.Columns.StartTime)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := write(t, t.TempDir(), "bikeshare.json", jsonConfig)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", cfg.DataDir)
	assert.Equal(t, "chicago", cfg.Cities[0].Name)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"directory", dir},
		{"unsupported extension", write(t, dir, "bikeshare.ini", "data_dir=x")},
		{"broken yaml", write(t, dir, "broken.yaml", "cities: [")},
		{"unknown source kind", write(t, dir, "ftp.yaml", "cities:\n  - name: x\n    source: ftp\n")},
		{"city without name", write(t, dir, "noname.yaml", "cities:\n  - path: x.csv\n")},
		{"unknown report type", write(t, dir, "report.yaml", "report_type: [docx]\n")},
		{"csv city without path", write(t, dir, "nopath.yaml", "cities:\n  - name: chicago\n")},
		{"sqlite city without path", write(t, dir, "nodb.yaml", "cities:\n  - name: chicago\n    source: sqlite\n    table: trips\n")},
		{"s3 city without key", write(t, dir, "nokey.yaml", "cities:\n  - name: chicago\n    source: s3\n    bucket: b\n")},
	}

	repo := NewConfigRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.LoadConfigFile(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BIKESHARE_DATA_DIR", "/env/data")
	t.Setenv("BIKESHARE_AWS_PROFILE", "env-profile")
	t.Setenv("BIKESHARE_AWS_BUCKET", "env-bucket")
	t.Setenv("BIKESHARE_CACHE", "true")

	cfg := &types.Config{
		DataDir: "/file/data",
		AWS:     types.AWSConfig{Region: "eu-west-1"},
		Cities:  []types.CityConfig{{Name: "chicago", Path: "chicago.csv"}},
	}
	require.NoError(t, NewConfigRepository().ApplyEnv(cfg))

	assert.Equal(t, "/env/data", cfg.DataDir)
	assert.Equal(t, "env-profile", cfg.AWS.Profile)
	assert.Equal(t, "env-bucket", cfg.AWS.Bucket)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region, "unset variables keep file values")
	assert.True(t, cfg.Cache)
	assert.Len(t, cfg.Cities, 1)
}

func TestApplyEnv_InvalidReportType(t *testing.T) {
	t.Setenv("BIKESHARE_REPORT_TYPE", "csv,docx")

	err := NewConfigRepository().ApplyEnv(&types.Config{})
	assert.Error(t, err)
}

func TestApplyEnv_S3Bucket(t *testing.T) {
	s3City := []types.CityConfig{{Name: "washington", Source: "s3", Key: "washington.csv"}}

	t.Run("missing everywhere", func(t *testing.T) {
		err := NewConfigRepository().ApplyEnv(&types.Config{Cities: s3City})
		assert.ErrorContains(t, err, "needs a bucket")
	})

	t.Run("inherited from environment", func(t *testing.T) {
		t.Setenv("BIKESHARE_AWS_BUCKET", "bikeshare-raw")
		cfg := &types.Config{Cities: s3City}
		require.NoError(t, NewConfigRepository().ApplyEnv(cfg))
		assert.Equal(t, "bikeshare-raw", cfg.AWS.Bucket)
	})
}
