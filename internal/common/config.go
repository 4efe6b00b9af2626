package common

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/ldg/constants"
)

// Config holds all application configuration
type Config struct {
	Paths    PathsConfig
	Database DatabaseConfig
	OCR      OCRConfig
	DocAI    DocAIConfig
	Log      LogConfig
}

// PathsConfig holds default input locations
type PathsConfig struct {
	PDFDir   string
	TruthCSV string
}

// DatabaseConfig holds run-history database configuration
type DatabaseConfig struct {
	// DSN selects the store: empty disables history, postgres:// uses pgx, anything else is a SQLite path.
	DSN         string
	DialTimeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Ghostscript string
	Tesseract   string
	TessdataDir string
	Lang        string
	DPI         int
	PSM         int
	TempRoot    string
	Timeout     time.Duration
	Recognizer  string // "tesseract" (CLI) or "gosseract" (in-process, needs the gosseract build tag)
	Normalize   bool
	Workers     int
}

// DocAIConfig holds Google Document AI configuration
type DocAIConfig struct {
	ProjectID       string `yaml:"project_id"`
	Location        string `yaml:"location"`
	ProcessorID     string `yaml:"processor_id"`
	MIMEType        string `yaml:"mime_type"`
	CredentialsFile string `yaml:"credentials_file"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "text" | "json"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			PDFDir:   getEnv("LDG_PDF_DIR", "data/pdf"),
			TruthCSV: getEnv("LDG_TRUTH_CSV", "data/truth/truth_sample.csv"),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("LDG_DB_URL", ""),
			DialTimeout: getEnvAsDuration("LDG_DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Ghostscript: getEnv("GHOSTSCRIPT_BIN", defaultGhostscript()),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Lang:        getEnv("OCR_LANG", constants.DefaultLang),
			DPI:         getEnvAsInt("OCR_DPI", constants.DefaultDPI),
			PSM:         getEnvAsInt("OCR_PSM", constants.DefaultPSM),
			TempRoot:    getEnv("OCR_TEMP_ROOT", ""),
			Timeout:     getEnvAsDuration("LDG_TIMEOUT", 0),
			Recognizer:  getEnv("OCR_RECOGNIZER", "tesseract"),
			Normalize:   getEnvAsBool("OCR_NORMALIZE", false),
			Workers:     getEnvAsInt("LDG_WORKERS", 1),
		},
		DocAI: DocAIConfig{
			ProjectID:       getEnv("GCP_PROJECT_ID", ""),
			Location:        getEnv("GCP_LOCATION", constants.DefaultDocAILocation),
			ProcessorID:     getEnv("DOCAI_PROCESSOR_ID", ""),
			MIMEType:        getEnv("DOCAI_MIME_TYPE", constants.DefaultMIMEType),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

func defaultGhostscript() string {
	if runtime.GOOS == "windows" {
		return "gswin64c"
	}
	return "gs"
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the OCR part of the configuration
func (c OCRConfig) Validate() error {
	v := NewValidator()
	v.Field("OCR_LANG", c.Lang, Required)
	v.Field("OCR_DPI", c.DPI, IntRange(1, 2400))
	v.Field("OCR_PSM", c.PSM, IntRange(1, 13))
	v.Field("OCR_RECOGNIZER", c.Recognizer, OneOf("tesseract", "gosseract"))
	v.Field("LDG_WORKERS", c.Workers, IntRange(1, 64))
	return v.Error()
}

// Validate reports ErrCloudConfig when any Document AI identifier is missing.
func (c DocAIConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ProjectID) == "" {
		missing = append(missing, "project_id")
	}
	if strings.TrimSpace(c.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(c.ProcessorID) == "" {
		missing = append(missing, "processor_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCloudConfig, strings.Join(missing, ", "))
	}
	return nil
}

// Override returns c with every non-empty field of o applied on top.
func (c DocAIConfig) Override(o DocAIConfig) DocAIConfig {
	if o.ProjectID != "" {
		c.ProjectID = o.ProjectID
	}
	if o.Location != "" {
		c.Location = o.Location
	}
	if o.ProcessorID != "" {
		c.ProcessorID = o.ProcessorID
	}
	if o.MIMEType != "" {
		c.MIMEType = o.MIMEType
	}
	if o.CredentialsFile != "" {
		c.CredentialsFile = o.CredentialsFile
	}
	return c
}

// LoadDocAIYAML reads Document AI settings from a YAML file.
func LoadDocAIYAML(path string) (DocAIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DocAIConfig{}, NotFoundErrorf("config file not found: %s", path)
		}
		return DocAIConfig{}, err
	}
	var dc DocAIConfig
	if err := yaml.Unmarshal(data, &dc); err != nil {
		return DocAIConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return dc, nil
}
