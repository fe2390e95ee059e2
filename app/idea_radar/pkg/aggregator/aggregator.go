package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/pacer"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source"
)

// ErrNoDataCollected 所有数据源都没有返回记录
var ErrNoDataCollected = errors.New("no data collected from any source")

// Cache 数据集缓存
type Cache interface {
	Load() (model.RawDataset, bool)
	Save(dataset model.RawDataset)
}

// Aggregator 按类别串行调用数据源，合并为一个原始数据集
type Aggregator struct {
	cache    Cache
	forums   []source.Fetcher
	feeds    []source.Fetcher // 订阅源与产品发布源共用一个节奏
	newPacer func() pacer.Waiter
}

// Option 聚合器选项
type Option func(*Aggregator)

// WithPacer 替换限速器构造函数，每个数据源族群各自持有一个
func WithPacer(f func() pacer.Waiter) Option {
	return func(a *Aggregator) { a.newPacer = f }
}

// New 创建聚合器；cache 可以为 nil
func New(cache Cache, fetchers []source.Fetcher, pacing time.Duration, opts ...Option) *Aggregator {
	a := &Aggregator{
		cache:    cache,
		newPacer: func() pacer.Waiter { return pacer.New(pacing) },
	}
	for _, f := range fetchers {
		if f.Kind() == model.KindForum {
			a.forums = append(a.forums, f)
		} else {
			a.feeds = append(a.feeds, f)
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collect 执行一次采集周期：缓存命中则直接返回，否则依次抓取所有数据源
func (a *Aggregator) Collect(ctx context.Context) (model.RawDataset, error) {
	if a.cache != nil {
		if dataset, ok := a.cache.Load(); ok {
			logger.Log.Infof("命中缓存，共 %d 条记录", dataset.Total())
			return dataset, nil
		}
	}
	return a.CollectFresh(ctx)
}

// CollectFresh 跳过缓存读取直接抓取，成功后写入缓存
func (a *Aggregator) CollectFresh(ctx context.Context) (model.RawDataset, error) {
	dataset := model.RawDataset{}
	for _, kind := range model.Kinds {
		dataset[kind] = []model.SourceRecord{}
	}

	for _, group := range [][]source.Fetcher{a.forums, a.feeds} {
		for f := range pacer.Seq(ctx, a.newPacer(), group) {
			logger.Log.Infof("正在抓取数据源: %s", f.Name())
			records := source.Collect(ctx, f)
			dataset[f.Kind()] = append(dataset[f.Kind()], records...)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collect aborted: %w", err)
		}
	}

	if dataset.Empty() {
		logger.Failure("数据采集失败", ErrNoDataCollected)
		return nil, ErrNoDataCollected
	}

	logger.Log.Infof("采集完成: forum=%d syndication=%d launchFeed=%d",
		len(dataset[model.KindForum]), len(dataset[model.KindSyndication]), len(dataset[model.KindLaunchFeed]))

	if a.cache != nil {
		a.cache.Save(dataset)
	}
	return dataset, nil
}
