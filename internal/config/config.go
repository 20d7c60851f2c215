package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the full pipeline configuration, assembled once at startup from a
// directory of YAML files. Each *_configs.yaml file contributes one top-level
// section named after its trimmed file stem (source_configs.yaml -> Source).
type Config struct {
	Source SourceConfig
}

// SourceConfig mirrors source_configs.yaml.
type SourceConfig struct {
	Data     DataConfig     `yaml:"data"`
	Template TemplateConfig `yaml:"template"`
	Model    ModelConfig    `yaml:"model"`
}

// DataConfig holds dataset roots and split parameters.
type DataConfig struct {
	InputPath   string   `yaml:"input_path"`
	OutputPath  string   `yaml:"output_path"`
	DatasetName []string `yaml:"dataset_name"`
	TrainSplit  float64  `yaml:"train_split"`
}

// TemplateConfig points at the chat-template descriptor file.
type TemplateConfig struct {
	Path string `yaml:"path"`
}

// ModelConfig holds model asset paths, consumed only by the template and
// tokenizer utilities.
type ModelConfig struct {
	ModelName         string `yaml:"model_name"`
	SourceModelPath   string `yaml:"source_model_path"`
	ExtendedModelPath string `yaml:"extended_model_path"`
	TorchDtype        string `yaml:"torch_dtype"`
}

var configSuffix = regexp.MustCompile(`_configs?$`)

// Load reads every YAML file in configDir into a Config. The directory must
// exist; individual sections the pipeline does not know about are ignored.
func Load(configDir string) (*Config, error) {
	info, err := os.Stat(configDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("configuration directory not found: %s", configDir)
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	for _, file := range files {
		stem := configSuffix.ReplaceAllString(trimExt(filepath.Base(file)), "")

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}

		switch stem {
		case "source":
			if err := yaml.Unmarshal(data, &cfg.Source); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", file, err)
			}
		}
	}

	return cfg, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
