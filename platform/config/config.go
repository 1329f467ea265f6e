// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// CatalogConfig provides settings for the catalog gateway.
type CatalogConfig interface {
	GetCatalogBaseURL() string
	GetCatalogCacheTTL() time.Duration
	IsMockDataEnabled() bool
}

// RedisConfig provides settings for the optional shared snapshot cache.
type RedisConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// AIConfig provides settings for the model-backed assistant.
type AIConfig interface {
	GetOpenAIKey() string
	GetOpenAIModel() string
	GetOpenAIBaseURL() string
	GetAITimeout() time.Duration
	IsModelExtractorEnabled() bool
}

// CompanyConfig provides the company identity rendered on budget documents.
type CompanyConfig interface {
	GetCompanyName() string
	GetCompanyDescription() string
	GetCompanyPhone() string
	GetPDFTerms() string
	GetPDFContact() string
}

// StorageConfig provides directories for file-backed repositories.
type StorageConfig interface {
	GetBudgetsDir() string
	GetKnowledgeDir() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	CatalogBaseURL  string
	CatalogCacheTTL time.Duration
	UseMockData     bool
	RedisURL        string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIBaseURL   string
	AITimeout       time.Duration
	CompanyName     string
	CompanyDesc     string
	CompanyPhone    string
	PDFTerms        string
	PDFContact      string
	BudgetsDir      string
	KnowledgeDir    string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// CatalogConfig implementation
func (c *Config) GetCatalogBaseURL() string         { return c.CatalogBaseURL }
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }
func (c *Config) IsMockDataEnabled() bool           { return c.UseMockData }

// RedisConfig implementation
func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

// AIConfig implementation
func (c *Config) GetOpenAIKey() string          { return c.OpenAIKey }
func (c *Config) GetOpenAIModel() string        { return c.OpenAIModel }
func (c *Config) GetOpenAIBaseURL() string      { return c.OpenAIBaseURL }
func (c *Config) GetAITimeout() time.Duration   { return c.AITimeout }
func (c *Config) IsModelExtractorEnabled() bool { return c.OpenAIKey != "" }

// CompanyConfig implementation
func (c *Config) GetCompanyName() string        { return c.CompanyName }
func (c *Config) GetCompanyDescription() string { return c.CompanyDesc }
func (c *Config) GetCompanyPhone() string       { return c.CompanyPhone }
func (c *Config) GetPDFTerms() string           { return c.PDFTerms }
func (c *Config) GetPDFContact() string         { return c.PDFContact }

// StorageConfig implementation
func (c *Config) GetBudgetsDir() string   { return c.BudgetsDir }
func (c *Config) GetKnowledgeDir() string { return c.KnowledgeDir }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	// OPEN_AI_KEY is the historical variable name; OPENAI_API_KEY also accepted.
	openAIKey := getEnv("OPEN_AI_KEY", "")
	if openAIKey == "" {
		openAIKey = getEnv("OPENAI_API_KEY", "")
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		CatalogBaseURL:  getEnv("HDL_API_BASE", "https://hdl.zomatik.com/ws_web.php"),
		CatalogCacheTTL: mustDuration(getEnv("CATALOG_CACHE_TTL", "5m")),
		UseMockData:     strings.EqualFold(getEnv("USE_MOCK_DATA", "false"), "true"),
		RedisURL:        getEnv("REDIS_URL", ""),
		OpenAIKey:       openAIKey,
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		AITimeout:       mustDuration(getEnv("AI_TIMEOUT", "30s")),
		CompanyName:     getEnv("COMPANY_NAME", "Corralón de Materiales"),
		CompanyDesc:     getEnv("COMPANY_DESC", "Venta de materiales para la construcción"),
		CompanyPhone:    getEnv("COMPANY_PHONE", ""),
		PDFTerms:        getEnv("PDF_TERMS", "Presupuesto válido por 15 días. Precios sujetos a cambio sin previo aviso."),
		PDFContact:      getEnv("PDF_CONTACT", ""),
		BudgetsDir:      getEnv("BUDGETS_DIR", "data/budgets"),
		KnowledgeDir:    getEnv("KNOWLEDGE_DIR", "data/knowledge"),
	}

	if cfg.CatalogBaseURL == "" && !cfg.UseMockData {
		return nil, fmt.Errorf("HDL_API_BASE is required when USE_MOCK_DATA is false")
	}
	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = 5 * time.Minute
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 30 * time.Second
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
