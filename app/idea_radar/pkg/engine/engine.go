package engine

import (
	"context"
	"fmt"

	"github.com/bytedance/gg/gson"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/aggregator"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/cache"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/insight"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source/factory"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/synth"
)

// Collector 采集原始数据集
type Collector interface {
	Collect(ctx context.Context) (dm.RawDataset, error)
	CollectFresh(ctx context.Context) (dm.RawDataset, error)
}

// Synthesizer 由洞察汇总生成创意
type Synthesizer interface {
	Synthesize(ctx context.Context, summary *dm.InsightSummary) (*dm.IdeaRecord, error)
}

// Engine 核心处理引擎
type Engine struct {
	collector   Collector
	synthesizer Synthesizer
}

// NewEngine 根据配置创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	// 初始化 LLM
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.CallTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	// 初始化限流器
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	burst := cfg.Concurrency.QPS
	limiter := rate.NewLimiter(limit, burst)

	fetchers, err := factory.NewFetchers(&cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("数据源初始化失败: %w", err)
	}

	store := cache.New(cfg.Cache.Path, cfg.Cache.Validity())
	agg := aggregator.New(store, fetchers, cfg.Sources.Pacing())

	syn := synth.New(chatModel, synth.GenerationConfig{
		Temperature:     cfg.LLM.GenerationTemperature(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
	}, limiter)

	return New(agg, syn), nil
}

// New 由已构造的组件创建引擎
func New(collector Collector, synthesizer Synthesizer) *Engine {
	return &Engine{collector: collector, synthesizer: synthesizer}
}

// RunOptions 运行选项
type RunOptions struct {
	// Refresh 跳过缓存读取
	Refresh          bool
	ProgressCallback func(status string, progress int)
}

func (o RunOptions) progress(status string, p int) {
	if o.ProgressCallback != nil {
		o.ProgressCallback(status, p)
	}
}

// Collect 只执行采集
func (e *Engine) Collect(ctx context.Context, refresh bool) (dm.RawDataset, error) {
	if refresh {
		return e.collector.CollectFresh(ctx)
	}
	return e.collector.Collect(ctx)
}

// Generate 执行一次创意生成：采集 -> 汇总 -> 生成
func (e *Engine) Generate(ctx context.Context, opts RunOptions) (*dm.IdeaResult, error) {
	opts.progress("collecting", 0)
	dataset, err := e.Collect(ctx, opts.Refresh)
	if err != nil {
		return nil, err
	}

	opts.progress("reducing", 60)
	summary := insight.Reduce(dataset)
	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		logger.Log.Debugf("洞察汇总: %s", gson.ToString(summary))
	}

	opts.progress("synthesizing", 70)
	idea, err := e.synthesizer.Synthesize(ctx, &summary)
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("创意生成完成: %s", idea.Title)
	opts.progress("completed", 100)
	return &dm.IdeaResult{Idea: idea, Insights: &summary}, nil
}
