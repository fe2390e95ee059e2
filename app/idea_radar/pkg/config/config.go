package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLLMBaseURL  = "https://models.inference.ai.azure.com"
	DefaultLLMModel    = "gpt-4o-mini"
	DefaultTemperature = float32(0.7)
	DefaultPacing      = time.Second

	budgetSlack = 10 * time.Second
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Sources     SourcesConfig     `yaml:"sources"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL         string  `yaml:"base_url"`
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	// Temperature 为空时取 0.7，显式写 0 表示贪心解码
	Temperature     *float32 `yaml:"temperature"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
	// Timeout 单次模型调用超时（秒）
	Timeout int `yaml:"timeout"`
}

// SourcesConfig 数据源配置
type SourcesConfig struct {
	Forums      []string `yaml:"forums"`       // 论坛社区名，例如 startups
	Syndication []string `yaml:"syndication"`  // RSS/Atom 订阅地址
	LaunchFeeds []string `yaml:"launch_feeds"` // 产品发布订阅地址

	ForumBaseURL   string `yaml:"forum_base_url"`
	ForumTimeRange string `yaml:"forum_time_range"`
	ForumLimit     int    `yaml:"forum_limit"`
	FeedLimit      int    `yaml:"feed_limit"`
	LaunchLimit    int    `yaml:"launch_limit"`

	// PacingMillis 同一类数据源相邻两次请求的最小间隔，为空时取 1000，0 表示不限速
	PacingMillis *int `yaml:"pacing_millis"`
	// Timeout 单次抓取超时（秒）
	Timeout int `yaml:"timeout"`
	// EnrichShortSnippets 摘要过短时抓取原文补全
	EnrichShortSnippets bool `yaml:"enrich_short_snippets"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Path          string `yaml:"path"`
	ValidityHours int    `yaml:"validity_hours"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置，作用于 LLM 调用
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// Pacing 数据源请求间隔
func (s SourcesConfig) Pacing() time.Duration {
	if s.PacingMillis == nil {
		return DefaultPacing
	}
	return time.Duration(*s.PacingMillis) * time.Millisecond
}

// FetchTimeout 单次抓取超时
func (s SourcesConfig) FetchTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// GenerationTemperature 模型采样温度
func (l LLMConfig) GenerationTemperature() float32 {
	if l.Temperature == nil {
		return DefaultTemperature
	}
	return *l.Temperature
}

// CallTimeout 单次模型调用超时
func (l LLMConfig) CallTimeout() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

// RequestBudget 一次完整生成（所有数据源串行抓取 + 限速间隔 + 模型调用）的最长耗时，
// 作为展示服务的默认请求超时
func (c *Config) RequestBudget() time.Duration {
	s := c.Sources
	fetch := s.FetchTimeout()
	if s.EnrichShortSnippets {
		// 每条过短的摘要都可能触发一次原文抓取
		fetch += time.Duration(max(s.FeedLimit, s.LaunchLimit)) * s.FetchTimeout()
	}
	sources := len(s.Forums) + len(s.Syndication) + len(s.LaunchFeeds)
	return time.Duration(sources)*(fetch+s.Pacing()) + c.LLM.CallTimeout() + budgetSlack
}

// Validity 缓存有效期
func (c CacheConfig) Validity() time.Duration {
	return time.Duration(c.ValidityHours) * time.Hour
}

// Default 返回默认配置，数据源与原始站点保持一致
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.Temperature == nil {
		t := DefaultTemperature
		c.LLM.Temperature = &t
	}
	if c.LLM.MaxOutputTokens == 0 {
		c.LLM.MaxOutputTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60
	}

	s := &c.Sources
	if len(s.Forums) == 0 {
		s.Forums = []string{"startups", "SaaS", "EntrepreneurRideAlong"}
	}
	if len(s.Syndication) == 0 {
		s.Syndication = []string{"https://hnrss.org/newest?q=saas"}
	}
	if len(s.LaunchFeeds) == 0 {
		s.LaunchFeeds = []string{"https://www.producthunt.com/feed"}
	}
	if s.ForumBaseURL == "" {
		s.ForumBaseURL = "https://www.reddit.com"
	}
	if s.ForumTimeRange == "" {
		s.ForumTimeRange = "month"
	}
	if s.ForumLimit == 0 {
		s.ForumLimit = 10
	}
	if s.FeedLimit == 0 {
		s.FeedLimit = 5
	}
	if s.LaunchLimit == 0 {
		s.LaunchLimit = 10
	}
	if s.PacingMillis == nil {
		p := int(DefaultPacing / time.Millisecond)
		s.PacingMillis = &p
	}
	if s.Timeout == 0 {
		s.Timeout = 30
	}

	if c.Cache.Path == "" {
		c.Cache.Path = "data/cache.json"
	}
	if c.Cache.ValidityHours == 0 {
		c.Cache.ValidityHours = 1
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS == 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM == 0 {
		c.Concurrency.RPM = 60
	}
}

// ApplyEnv 读取 .env 与环境变量覆盖敏感配置
func (c *Config) ApplyEnv() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	if v := os.Getenv("IDEA_RADAR_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("GITHUB_TOKEN")
	}
	if v := os.Getenv("IDEA_RADAR_LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("IDEA_RADAR_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}

// Validate 校验必要配置
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm api key is missing (set llm.api_key or GITHUB_TOKEN)")
	}
	if len(c.Sources.Forums)+len(c.Sources.Syndication)+len(c.Sources.LaunchFeeds) == 0 {
		return fmt.Errorf("no sources configured")
	}
	return nil
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnv()

	return &cfg, nil
}
