package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix é o prefixo das variáveis de ambiente, ex.: BIKESHARE_DATA_DIR, BIKESHARE_AWS_PROFILE.
const EnvPrefix = "BIKESHARE"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{validate: validator.New()}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := filepath.Ext(filePath)
	fileExtension = strings.ToLower(fileExtension)

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	// Lê o arquivo
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	// Caminhos relativos no arquivo são relativos ao próprio arquivo
	if config.DataDir != "" && !filepath.IsAbs(config.DataDir) {
		config.DataDir = filepath.Join(filepath.Dir(filePath), config.DataDir)
	}

	if err := r.validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}

	return &config, nil
}

// ApplyEnv sobrescreve a configuração com as variáveis de ambiente BIKESHARE_*.
func (r *ConfigRepositoryImpl) ApplyEnv(cfg *types.Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}
	if err := r.validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return checkBuckets(cfg)
}

// checkBuckets garante que toda cidade S3 tenha bucket, próprio ou herdado da seção aws.
func checkBuckets(cfg *types.Config) error {
	for _, city := range cfg.Cities {
		if city.Source == "s3" && city.Bucket == "" && cfg.AWS.Bucket == "" {
			return fmt.Errorf("city %q: s3 source needs a bucket (set cities[].bucket, aws.bucket or %s_AWS_BUCKET)", city.Name, EnvPrefix)
		}
	}
	return nil
}
