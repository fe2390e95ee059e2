package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source"
)

const (
	// MaxSnippetLength 摘要截断长度
	MaxSnippetLength = 300
	// minSnippetLength 开启补全时，短于该长度的摘要会抓取原文
	minSnippetLength = 80
)

// Enricher 根据文章链接抓取正文
type Enricher func(ctx context.Context, link string) (string, error)

// Client 订阅源客户端，RSS/Atom/JSON Feed 均由 gofeed 解析
type Client struct {
	url      string
	kind     model.SourceKind
	limit    int
	parser   *gofeed.Parser
	enrich   Enricher
	deadline time.Duration
}

// Option 客户端选项
type Option func(*Client)

// WithLimit 返回条目上限
func WithLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithHTTPClient 自定义 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.parser.Client = hc }
}

// WithEnricher 摘要过短时使用 e 补全正文
func WithEnricher(e Enricher) Option {
	return func(c *Client) { c.enrich = e }
}

// NewClient 创建订阅源客户端，kind 为 syndication 或 launchFeed
func NewClient(url string, kind model.SourceKind, timeout time.Duration, opts ...Option) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "idea-radar/1.0"

	c := &Client{
		url:      url,
		kind:     kind,
		limit:    5,
		parser:   parser,
		deadline: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadabilityEnricher 使用 go-readability 抓取并清洗原文
func ReadabilityEnricher(timeout time.Duration) Enricher {
	return func(ctx context.Context, link string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		article, err := readability.FromURL(link, timeout)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

// Name 订阅地址
func (c *Client) Name() string {
	return c.url
}

// Kind 数据源类别
func (c *Client) Kind() model.SourceKind {
	return c.kind
}

// Fetch 拉取并解析订阅源
func (c *Client) Fetch(ctx context.Context) ([]model.SourceRecord, error) {
	records, err := c.fetch(ctx)
	if err != nil {
		return nil, source.NewFetchError(c, err)
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.SourceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.deadline)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(c.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	name := strings.TrimSpace(feed.Title)
	if name == "" {
		name = c.url
	}

	records := make([]model.SourceRecord, 0, c.limit)
	for _, item := range feed.Items {
		if len(records) >= c.limit {
			break
		}
		records = append(records, model.SourceRecord{
			Title:      strings.TrimSpace(item.Title),
			Content:    c.snippet(ctx, item),
			URL:        item.Link,
			Timestamp:  published(item),
			Kind:       c.kind,
			SourceName: name,
		})
	}
	return records, nil
}

// snippet 优先使用 description，其次 content，去掉 HTML 后截断
func (c *Client) snippet(ctx context.Context, item *gofeed.Item) string {
	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	text := StripHTML(raw)

	if c.enrich != nil && len([]rune(text)) < minSnippetLength && item.Link != "" {
		full, err := c.enrich(ctx, item.Link)
		if err != nil {
			logger.Log.Warnf("原文抓取失败，使用订阅摘要 [%s]: %v", item.Link, err)
		} else if full = strings.Join(strings.Fields(full), " "); len(full) > len(text) {
			text = full
		}
	}
	return source.Truncate(text, MaxSnippetLength)
}

func published(item *gofeed.Item) string {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.Published != "":
		return item.Published
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	default:
		return item.Updated
	}
}

// StripHTML 提取 HTML 片段中的纯文本并压缩空白
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
