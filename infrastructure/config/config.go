package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion      string `yaml:"aws_region"`
	BookingsBucket string `yaml:"bookings_bucket"`
	SessionsTable  string `yaml:"sessions_table"`
	EventBusName   string `yaml:"event_bus_name"`

	// Bedrock configuration
	DefaultTextModel       string `yaml:"default_text_model"`
	IdeationModelID        string `yaml:"ideation_model_id"`
	QAModelID              string `yaml:"qa_model_id"`
	KnowledgeBaseID        string `yaml:"knowledge_base_id"`
	GuardrailsAgentID      string `yaml:"guardrails_agent_id"`
	GuardrailsAgentAliasID string `yaml:"guardrails_agent_alias_id"`

	// External systems. An empty URL means the system is simulated or skipped.
	AvailabilitySystemURL string        `yaml:"availability_system_url"`
	BookingSystemURL      string        `yaml:"booking_system_url"`
	LoyaltySystemURL      string        `yaml:"loyalty_system_url"`
	ExternalAPIKey        string        `yaml:"-"`
	AvailabilityTimeout   time.Duration `yaml:"availability_timeout"`
	BookingTimeout        time.Duration `yaml:"booking_timeout"`
	LoyaltyTimeout        time.Duration `yaml:"loyalty_timeout"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`
}

// LoadConfig loads configuration from an optional YAML file named by
// CONFIG_FILE, then from environment variables, which take precedence.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerAddress:       ":8080",
		Environment:         "development",
		AWSRegion:           "us-east-1",
		BookingsBucket:      "travel-assistant-bookings",
		EventBusName:        "travel-assistant-events",
		DefaultTextModel:    defaultModelID,
		IdeationModelID:     defaultModelID,
		QAModelID:           defaultModelID,
		AvailabilityTimeout: 10 * time.Second,
		BookingTimeout:      15 * time.Second,
		LoyaltyTimeout:      5 * time.Second,
		LogLevel:            "info",
		EnableCORS:          true,
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironment() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.BookingsBucket = getEnv("BOOKINGS_BUCKET", c.BookingsBucket)
	c.SessionsTable = getEnv("SESSIONS_TABLE", c.SessionsTable)
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.DefaultTextModel = getEnv("DEFAULT_TEXT_MODEL", c.DefaultTextModel)
	c.IdeationModelID = getEnv("IDEATION_MODEL_ID", c.IdeationModelID)
	c.QAModelID = getEnv("QA_MODEL_ID", c.QAModelID)
	c.KnowledgeBaseID = getEnv("KNOWLEDGE_BASE_ID", c.KnowledgeBaseID)
	c.GuardrailsAgentID = getEnv("GUARDRAILS_AGENT_ID", c.GuardrailsAgentID)
	c.GuardrailsAgentAliasID = getEnv("GUARDRAILS_AGENT_ALIAS_ID", c.GuardrailsAgentAliasID)

	c.AvailabilitySystemURL = getEnv("AVAILABILITY_SYSTEM_URL", c.AvailabilitySystemURL)
	c.BookingSystemURL = getEnv("BOOKING_SYSTEM_URL", c.BookingSystemURL)
	c.LoyaltySystemURL = getEnv("LOYALTY_SYSTEM_URL", c.LoyaltySystemURL)
	c.ExternalAPIKey = getEnv("EXTERNAL_API_KEY", c.ExternalAPIKey)
	c.AvailabilityTimeout = getEnvDuration("AVAILABILITY_TIMEOUT", c.AvailabilityTimeout)
	c.BookingTimeout = getEnvDuration("BOOKING_TIMEOUT", c.BookingTimeout)
	c.LoyaltyTimeout = getEnvDuration("LOYALTY_TIMEOUT", c.LoyaltyTimeout)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.BookingsBucket == "" {
		return fmt.Errorf("BOOKINGS_BUCKET is required")
	}
	if (c.GuardrailsAgentID == "") != (c.GuardrailsAgentAliasID == "") {
		return fmt.Errorf("GUARDRAILS_AGENT_ID and GUARDRAILS_AGENT_ALIAS_ID must be set together")
	}
	if c.IsProduction() {
		if c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required in production")
		}
		if c.hasExternalSystem() && c.ExternalAPIKey == "" {
			return fmt.Errorf("EXTERNAL_API_KEY is required when an external system URL is set")
		}
	}
	return nil
}

// GuardrailsEnabled reports whether chat messages are routed through a guardrails agent.
func (c *Config) GuardrailsEnabled() bool {
	return c.GuardrailsAgentID != "" && c.GuardrailsAgentAliasID != ""
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) hasExternalSystem() bool {
	return c.AvailabilitySystemURL != "" || c.BookingSystemURL != "" || c.LoyaltySystemURL != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvDuration accepts Go duration strings ("10s") or whole seconds ("10").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
