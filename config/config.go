package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"port"`
	UploadDir         string        `mapstructure:"upload_dir"`
	AllowedDocsDir    string        `mapstructure:"allowed_docs_dir"`
	RestrictedDocsDir string        `mapstructure:"restricted_docs_dir"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`

	Retrieval RetrievalConfig     `mapstructure:"retrieval"`
	Weaviate  WeaviateStoreConfig `mapstructure:"weaviate"`
	Embedding EmbeddingConfig     `mapstructure:"embedding"`
	Gemini    GeminiConfig        `mapstructure:"gemini"`
	Mongo     MongoConfig         `mapstructure:"mongo"`
	Log       LogConfig           `mapstructure:"log"`
}

// RetrievalConfig holds the knobs for classification and answer routing.
type RetrievalConfig struct {
	SimilarityThreshold float32 `mapstructure:"similarity_threshold"`
	ContextLimit        int     `mapstructure:"context_limit"`
	TopK                int     `mapstructure:"top_k"`
	ChunkSize           int     `mapstructure:"chunk_size"`
	ChunkOverlap        int     `mapstructure:"chunk_overlap"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

type EmbeddingConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"OPENAI_API_KEY"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKeys []string `mapstructure:"GEMINI_API_KEYS"`
	Model   string   `mapstructure:"model"`
}

type MongoConfig struct {
	URI      string `mapstructure:"MONGODB_URI"`
	Database string `mapstructure:"database"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Secrets are only ever read from the environment.
	v.BindEnv("weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")
	v.BindEnv("embedding.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("gemini.GEMINI_API_KEYS", "GEMINI_API_KEYS")
	v.BindEnv("mongo.MONGODB_URI", "MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("allowed_docs_dir", "policies/org_docs")
	v.SetDefault("restricted_docs_dir", "policies/restricted_docs")
	v.SetDefault("session_ttl", time.Duration(0))

	v.SetDefault("retrieval.similarity_threshold", 0.6)
	v.SetDefault("retrieval.context_limit", 2000)
	v.SetDefault("retrieval.top_k", 3)
	v.SetDefault("retrieval.chunk_size", 500)
	v.SetDefault("retrieval.chunk_overlap", 100)

	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("gemini.model", "models/gemini-1.5-flash-latest")
	v.SetDefault("mongo.database", "policy-chatbot")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
