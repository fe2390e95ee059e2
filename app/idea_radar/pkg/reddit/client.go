package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/source"
)

const (
	// MaxContentLength 帖子正文截断长度
	MaxContentLength = 500

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client 论坛热帖客户端，对应一个社区
type Client struct {
	baseURL   string
	community string
	timeRange string
	limit     int
	client    *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithTimeRange 热帖统计区间，例如 day、week、month
func WithTimeRange(t string) Option {
	return func(c *Client) { c.timeRange = t }
}

// WithLimit 返回的帖子上限
func WithLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithHTTPClient 自定义 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient 创建一个新的论坛客户端
func NewClient(baseURL, community string, timeout time.Duration, opts ...Option) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		baseURL:   baseURL,
		community: community,
		timeRange: "month",
		limit:     10,
		client:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

// Name 返回 r/<community>
func (c *Client) Name() string {
	return "r/" + c.community
}

// Kind 论坛类数据源
func (c *Client) Kind() model.SourceKind {
	return model.KindForum
}

// listing 热帖接口响应结构
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Fetch 拉取社区热帖
func (c *Client) Fetch(ctx context.Context) ([]model.SourceRecord, error) {
	records, err := c.fetch(ctx)
	if err != nil {
		return nil, source.NewFetchError(c, err)
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.SourceRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	u = u.JoinPath("r", c.community, "top.json")

	q := u.Query()
	q.Set("t", c.timeRange)
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	// 不带浏览器 User-Agent 会被直接限流
	httpReq.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("forum api error (status %d): %s", res.StatusCode, string(body))
	}

	var resp listing
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	records := make([]model.SourceRecord, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		p := child.Data
		rec := model.SourceRecord{
			Title:      p.Title,
			Content:    source.Truncate(p.Selftext, MaxContentLength),
			URL:        "https://reddit.com" + p.Permalink,
			Score:      model.IntPtr(p.Score),
			Comments:   model.IntPtr(p.NumComments),
			Kind:       model.KindForum,
			SourceName: c.Name(),
		}
		if p.CreatedUTC > 0 {
			rec.Timestamp = time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339)
		}
		records = append(records, rec)
		if len(records) >= c.limit {
			break
		}
	}

	return records, nil
}
