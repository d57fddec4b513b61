package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration. Every threshold that
// drives the escalation pipeline lives here so a deployment can tune it
// without a rebuild.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	OCR       OCRConfig       `yaml:"ocr" mapstructure:"ocr"`
	Extract   ExtractConfig   `yaml:"extract" mapstructure:"extract"`
	Layout    LayoutConfig    `yaml:"layout" mapstructure:"layout"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Classify  ClassifyConfig  `yaml:"classify" mapstructure:"classify"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the runs database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for the generative layer.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// JinaConfig holds the embeddings API settings.
type JinaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// OCRConfig configures optical character recognition.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	TesseractPath string `yaml:"tesseract_path" mapstructure:"tesseract_path"`
}

// ExtractConfig configures text acquisition and Layer 1.
type ExtractConfig struct {
	// OCRTextThreshold is the native-text length below which the document
	// falls back to OCR (when an OCR provider is available).
	OCRTextThreshold  int    `yaml:"ocr_text_threshold" mapstructure:"ocr_text_threshold"`
	LogoPath          string `yaml:"logo_path" mapstructure:"logo_path"`
	LogoHashThreshold int    `yaml:"logo_hash_threshold" mapstructure:"logo_hash_threshold"`
}

// LayoutConfig configures the Layer 2 layout inference engine.
type LayoutConfig struct {
	// LabelTolerance is the alignment tolerance (pt) when matching a value
	// block to the right of or below a label block.
	LabelTolerance float64 `yaml:"label_tolerance" mapstructure:"label_tolerance"`
	// TitleFontRatio restricts poster-title candidates to blocks whose font
	// is at least this share of the page maximum.
	TitleFontRatio float64 `yaml:"title_font_ratio" mapstructure:"title_font_ratio"`
	// TitleMergeGap is the max vertical gap (pt) when merging adjacent
	// same-size lines into one title candidate.
	TitleMergeGap float64 `yaml:"title_merge_gap" mapstructure:"title_merge_gap"`
	// TitleUpperCutoff is the y offset below which the position bonus drops.
	TitleUpperCutoff float64 `yaml:"title_upper_cutoff" mapstructure:"title_upper_cutoff"`
}

// LLMConfig configures the Layer 3 generative fallback.
type LLMConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// TextCap is how many leading characters of raw text go into the prompt.
	TextCap           int     `yaml:"text_cap" mapstructure:"text_cap"`
	TimeoutSecs       int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ClassifyConfig configures the hybrid category classifier.
type ClassifyConfig struct {
	TaxonomyPath string `yaml:"taxonomy_path" mapstructure:"taxonomy_path"`

	TopK         int `yaml:"top_k" mapstructure:"top_k"`
	LexicalPool  int `yaml:"lexical_pool" mapstructure:"lexical_pool"`
	SemanticPool int `yaml:"semantic_pool" mapstructure:"semantic_pool"`

	LexicalWeight  float64 `yaml:"lexical_weight" mapstructure:"lexical_weight"`
	SemanticWeight float64 `yaml:"semantic_weight" mapstructure:"semantic_weight"`

	HighScore    float64 `yaml:"high_score" mapstructure:"high_score"`
	HighMargin   float64 `yaml:"high_margin" mapstructure:"high_margin"`
	MediumScore  float64 `yaml:"medium_score" mapstructure:"medium_score"`
	MediumMargin float64 `yaml:"medium_margin" mapstructure:"medium_margin"`

	CloseCallMargin float64 `yaml:"close_call_margin" mapstructure:"close_call_margin"`

	TitleBoost  int `yaml:"title_boost" mapstructure:"title_boost"`
	AgendaBoost int `yaml:"agenda_boost" mapstructure:"agenda_boost"`
	RawSlice    int `yaml:"raw_slice" mapstructure:"raw_slice"`
	SummaryCap  int `yaml:"summary_cap" mapstructure:"summary_cap"`

	Rerank bool `yaml:"rerank" mapstructure:"rerank"`
}

// BatchConfig configures batch processing over a brochure directory.
type BatchConfig struct {
	MaxConcurrentDocuments int    `yaml:"max_concurrent_documents" mapstructure:"max_concurrent_documents"`
	OutputPath             string `yaml:"output_path" mapstructure:"output_path"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml and BROCHURE_* environment
// variables, applying defaults for everything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BROCHURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// SetDefaults installs the default value for every key. Exposed so the
// config init command can render a complete template.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "brochures.db")

	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)

	v.SetDefault("jina.base_url", "https://api.jina.ai")
	v.SetDefault("jina.model", "jina-embeddings-v3")

	v.SetDefault("ocr.provider", "tesseract")
	v.SetDefault("ocr.tesseract_path", "tesseract")

	v.SetDefault("extract.ocr_text_threshold", 300)
	v.SetDefault("extract.logo_path", "assets/hrdc_logo.png")
	v.SetDefault("extract.logo_hash_threshold", 25)

	v.SetDefault("layout.label_tolerance", 40.0)
	v.SetDefault("layout.title_font_ratio", 0.8)
	v.SetDefault("layout.title_merge_gap", 15.0)
	v.SetDefault("layout.title_upper_cutoff", 350.0)

	v.SetDefault("llm.enabled", true)
	v.SetDefault("llm.text_cap", 4000)
	v.SetDefault("llm.timeout_secs", 30)
	v.SetDefault("llm.requests_per_second", 1.0)

	v.SetDefault("classify.taxonomy_path", "taxonomy.xlsx")
	v.SetDefault("classify.top_k", 5)
	v.SetDefault("classify.lexical_pool", 40)
	v.SetDefault("classify.semantic_pool", 60)
	v.SetDefault("classify.lexical_weight", 0.15)
	v.SetDefault("classify.semantic_weight", 0.85)
	v.SetDefault("classify.high_score", 0.55)
	v.SetDefault("classify.high_margin", 0.08)
	v.SetDefault("classify.medium_score", 0.42)
	v.SetDefault("classify.medium_margin", 0.04)
	v.SetDefault("classify.close_call_margin", 0.03)
	v.SetDefault("classify.title_boost", 10)
	v.SetDefault("classify.agenda_boost", 2)
	v.SetDefault("classify.raw_slice", 1500)
	v.SetDefault("classify.summary_cap", 2000)
	v.SetDefault("classify.rerank", true)

	v.SetDefault("batch.max_concurrent_documents", 5)
	v.SetDefault("batch.output_path", "brochure_metadata.xlsx")

	v.SetDefault("server.port", 8080)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
