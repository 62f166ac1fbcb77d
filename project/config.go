package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file looked up at the root.
const ConfigFileName = "craby.yaml"

var knownTargets = []string{
	"aarch64-linux-android",
	"armv7-linux-androideabi",
	"x86_64-linux-android",
	"i686-linux-android",
	"aarch64-apple-ios",
	"aarch64-apple-ios-sim",
	"x86_64-apple-ios",
}

// Config is the parsed craby.yaml.
type Config struct {
	Project ProjectConfig `yaml:"project" validate:"required"`
	Android AndroidConfig `yaml:"android" validate:"required"`
	IOS     IOSConfig     `yaml:"ios"`
}

// ProjectConfig names the project and locates its spec sources.
type ProjectConfig struct {
	Name      string `yaml:"name" validate:"required"`
	SourceDir string `yaml:"sourceDir"`
}

// AndroidConfig holds Android-specific settings.
type AndroidConfig struct {
	PackageName string   `yaml:"packageName" validate:"required,android_package"`
	Targets     []string `yaml:"targets" validate:"omitempty,dive,build_target"`
}

// IOSConfig holds iOS-specific settings.
type IOSConfig struct {
	Targets []string `yaml:"targets" validate:"omitempty,dive,build_target"`
}

var androidPackageRe = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("android_package", func(fl validator.FieldLevel) bool {
		return androidPackageRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("build_target", func(fl validator.FieldLevel) bool {
		target := fl.Field().String()
		for _, known := range knownTargets {
			if target == known {
				return true
			}
		}
		return false
	})
	return v
}

// LoadConfig reads and validates craby.yaml from the project root.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s not found in %s", ConfigFileName, root)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates configuration bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyConfigDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			msgs := make([]string, 0, len(valErrs))
			for _, ve := range valErrs {
				msgs = append(msgs, formatConfigError(ve))
			}
			return nil, fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyConfigDefaults(cfg *Config) {
	if cfg.Project.SourceDir == "" {
		cfg.Project.SourceDir = "src"
	}
	if cfg.Android.Targets == nil {
		cfg.Android.Targets = []string{
			"aarch64-linux-android",
			"armv7-linux-androideabi",
			"x86_64-linux-android",
			"i686-linux-android",
		}
	}
	if cfg.IOS.Targets == nil {
		cfg.IOS.Targets = []string{
			"aarch64-apple-ios",
			"aarch64-apple-ios-sim",
			"x86_64-apple-ios",
		}
	}
}

func formatConfigError(ve validator.FieldError) string {
	field := ve.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch ve.Tag() {
	case "required":
		return field + " is required"
	case "android_package":
		return fmt.Sprintf("%s: invalid Android package name %q", field, ve.Value())
	case "build_target":
		return fmt.Sprintf("%s: unknown build target %q", field, ve.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, ve.Tag())
	}
}
