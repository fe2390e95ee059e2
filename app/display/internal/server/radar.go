package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/idea_radar/app/display/internal/conf"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
	irLogger "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
)

// RadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config，未设置的字段取默认值
func RadarConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if l := c.Llm; l != nil {
			cfg.LLM = config.LLMConfig{
				BaseURL:         l.BaseUrl,
				APIKey:          l.ApiKey,
				Model:           l.Model,
				Temperature:     l.Temperature,
				MaxOutputTokens: int(l.MaxOutputTokens),
				Timeout:         int(l.Timeout),
			}
		}
		if s := c.Sources; s != nil {
			cfg.Sources = config.SourcesConfig{
				Forums:              s.Forums,
				Syndication:         s.Syndication,
				LaunchFeeds:         s.LaunchFeeds,
				ForumBaseURL:        s.ForumBaseUrl,
				ForumTimeRange:      s.ForumTimeRange,
				ForumLimit:          int(s.ForumLimit),
				FeedLimit:           int(s.FeedLimit),
				LaunchLimit:         int(s.LaunchLimit),
				Timeout:             int(s.Timeout),
				EnrichShortSnippets: s.EnrichShortSnippets,
			}
			if s.PacingMillis != nil {
				p := int(*s.PacingMillis)
				cfg.Sources.PacingMillis = &p
			}
		}
		if ca := c.Cache; ca != nil {
			cfg.Cache = config.CacheConfig{Path: ca.Path, ValidityHours: int(ca.ValidityHours)}
		}
		if lg := c.Log; lg != nil {
			cfg.Log = config.LogConfig{Level: lg.Level, File: lg.File}
		}
		if cc := c.Concurrency; cc != nil {
			cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
		}
	}
	cfg.ApplyDefaults()
	cfg.ApplyEnv()
	return cfg
}

// NewRadarEngine 初始化 idea_radar 引擎
func NewRadarEngine(cfg *config.Config, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	if err := cfg.Validate(); err != nil {
		helper.Errorf("Invalid radar config: %v", err)
		return nil, nil, err
	}

	// 初始化日志
	if err := irLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init idea_radar logger: %v", err)
		_ = irLogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up idea_radar engine")
	}
	return eng, cleanup, nil
}
