package source

import (
	"context"
	"fmt"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

// Fetcher 定义通用的数据源抓取接口，每个外部数据源一个实例
type Fetcher interface {
	// Fetch 返回归一化后的记录；网络、解析或非成功状态码均以 *FetchError 返回
	Fetch(ctx context.Context) ([]model.SourceRecord, error)
	// Name 数据源标识，例如 r/startups 或订阅地址
	Name() string
	// Kind 数据源类别
	Kind() model.SourceKind
}

// FetchError 单个数据源抓取失败
type FetchError struct {
	Source string
	Kind   model.SourceKind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s source %s: %v", e.Kind, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError 包装数据源错误
func NewFetchError(f Fetcher, err error) *FetchError {
	return &FetchError{Source: f.Name(), Kind: f.Kind(), Err: err}
}

// Collect 调用 Fetcher，失败时记录日志并返回空结果，错误不会继续向上抛
func Collect(ctx context.Context, f Fetcher) []model.SourceRecord {
	records, err := f.Fetch(ctx)
	if err != nil {
		logger.Failure(fmt.Sprintf("数据源抓取失败 [%s]", f.Name()), err)
		return []model.SourceRecord{}
	}
	logger.Log.Debugf("数据源 [%s] 返回 %d 条记录", f.Name(), len(records))
	return records
}

// Truncate 按字符截断文本
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
