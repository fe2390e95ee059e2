package factory

import (
	"fmt"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/feed"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/reddit"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source"
)

// NewFetchers 根据配置创建所有数据源，顺序与配置一致
func NewFetchers(cfg *config.SourcesConfig) ([]source.Fetcher, error) {
	timeout := cfg.FetchTimeout()
	var fetchers []source.Fetcher

	for _, community := range cfg.Forums {
		if community == "" {
			return nil, fmt.Errorf("empty forum name")
		}
		fetchers = append(fetchers, reddit.NewClient(cfg.ForumBaseURL, community, timeout,
			reddit.WithTimeRange(cfg.ForumTimeRange),
			reddit.WithLimit(cfg.ForumLimit),
		))
	}

	var feedOpts []feed.Option
	if cfg.EnrichShortSnippets {
		feedOpts = append(feedOpts, feed.WithEnricher(feed.ReadabilityEnricher(timeout)))
	}

	for _, url := range cfg.Syndication {
		if url == "" {
			return nil, fmt.Errorf("empty syndication feed url")
		}
		opts := append([]feed.Option{feed.WithLimit(cfg.FeedLimit)}, feedOpts...)
		fetchers = append(fetchers, feed.NewClient(url, model.KindSyndication, timeout, opts...))
	}

	for _, url := range cfg.LaunchFeeds {
		if url == "" {
			return nil, fmt.Errorf("empty launch feed url")
		}
		opts := append([]feed.Option{feed.WithLimit(cfg.LaunchLimit)}, feedOpts...)
		fetchers = append(fetchers, feed.NewClient(url, model.KindLaunchFeed, timeout, opts...))
	}

	if len(fetchers) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	return fetchers, nil
}
