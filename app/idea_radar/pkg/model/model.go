package model

// SourceKind 数据源类别
type SourceKind string

const (
	KindForum       SourceKind = "forum"
	KindSyndication SourceKind = "syndication"
	KindLaunchFeed  SourceKind = "launchFeed"
)

// Kinds 固定的数据源类别顺序，汇总与关键词统计都按这个顺序遍历
var Kinds = []SourceKind{KindForum, KindSyndication, KindLaunchFeed}

// SourceRecord 单条归一化后的数据源记录，抓取后不再修改
type SourceRecord struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	URL        string     `json:"url"`
	Score      *int       `json:"score,omitempty"`
	Comments   *int       `json:"comments,omitempty"` // 论坛回复数
	Timestamp  string     `json:"timestamp,omitempty"`
	Kind       SourceKind `json:"sourceKind"`
	SourceName string     `json:"sourceName"`
}

// RawDataset 一次采集周期的原始数据，按类别分组
type RawDataset map[SourceKind][]SourceRecord

// Total 所有类别的记录总数
func (d RawDataset) Total() int {
	n := 0
	for _, records := range d {
		n += len(records)
	}
	return n
}

// Empty 所有类别都没有记录
func (d RawDataset) Empty() bool {
	return d.Total() == 0
}

// TopItem 汇总中的热门条目
type TopItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       *int   `json:"score,omitempty"`
	SourceLabel string `json:"sourceLabel"`
}

// InsightSummary 用于构造 Prompt 的定长洞察汇总
type InsightSummary struct {
	TrendingTerms []string           `json:"trendingTerms"`
	TopItems      []TopItem          `json:"topItems"`
	SourceCounts  map[SourceKind]int `json:"sourceCounts"`
}

// IdeaRecord 模型生成的商业创意
type IdeaRecord struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	TargetMarket string   `json:"targetMarket"`
	KeyFeatures  []string `json:"keyFeatures"`
	TechStack    []string `json:"techStack"`
}

// IdeaResult 一次创意生成的完整结果
type IdeaResult struct {
	Idea     *IdeaRecord     `json:"idea"`
	Insights *InsightSummary `json:"insights"`
}

// IntPtr 返回 v 的指针
func IntPtr(v int) *int {
	return &v
}
