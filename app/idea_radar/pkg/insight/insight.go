// Package insight 把原始数据集压缩成定长的洞察汇总。
//
// 关键词提取是朴素的词频统计：不做停用词过滤，也不做词干化。
package insight

import (
	"sort"
	"strings"
	"unicode"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

const (
	TopForumItems     = 5
	TopFeedItems      = 3
	MaxTrendingTerms  = 10
	minTermRuneLength = 4
)

// Reduce 由数据集计算洞察汇总，纯函数
func Reduce(dataset model.RawDataset) model.InsightSummary {
	summary := model.InsightSummary{
		TrendingTerms: TrendingTerms(dataset),
		TopItems:      topItems(dataset),
		SourceCounts:  make(map[model.SourceKind]int, len(model.Kinds)),
	}
	for _, kind := range model.Kinds {
		summary.SourceCounts[kind] = len(dataset[kind])
	}
	return summary
}

func topItems(dataset model.RawDataset) []model.TopItem {
	items := make([]model.TopItem, 0, TopForumItems+2*TopFeedItems)

	// 论坛按分数降序，不修改原切片
	forum := append([]model.SourceRecord(nil), dataset[model.KindForum]...)
	sort.SliceStable(forum, func(i, j int) bool {
		return score(forum[i]) > score(forum[j])
	})
	for _, r := range forum[:min(len(forum), TopForumItems)] {
		items = append(items, model.TopItem{
			Title:       r.Title,
			URL:         r.URL,
			Score:       r.Score,
			SourceLabel: r.SourceName,
		})
	}

	for _, kind := range []model.SourceKind{model.KindSyndication, model.KindLaunchFeed} {
		records := dataset[kind]
		for _, r := range records[:min(len(records), TopFeedItems)] {
			items = append(items, model.TopItem{
				Title:       r.Title,
				URL:         r.URL,
				Score:       r.Score,
				SourceLabel: string(kind),
			})
		}
	}
	return items
}

func score(r model.SourceRecord) int {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

// TrendingTerms 统计所有记录标题与正文中的高频词，长度不超过 3 的词被丢弃，
// 频次相同时按首次出现的顺序
func TrendingTerms(dataset model.RawDataset) []string {
	var sb strings.Builder
	for _, kind := range model.Kinds {
		for _, r := range dataset[kind] {
			sb.WriteString(r.Title)
			sb.WriteByte(' ')
			sb.WriteString(r.Content)
			sb.WriteByte(' ')
		}
	}

	counts := make(map[string]int)
	order := []string{}
	for _, tok := range Tokenize(sb.String()) {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[:min(len(order), MaxTrendingTerms)]
}

// Tokenize 小写化、去标点、按空白切分，并丢弃长度不超过 3 的词
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len([]rune(tok)) >= minTermRuneLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
