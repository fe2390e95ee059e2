// Package pacer 提供按最小间隔依次产出数据源的迭代器，用于对上游做礼貌性限速。
package pacer

import (
	"context"
	"iter"
	"time"

	"golang.org/x/time/rate"
)

// Waiter 阻塞到允许下一次调用，*rate.Limiter 满足该接口
type Waiter interface {
	Wait(ctx context.Context) error
}

// New 创建间隔为 interval 的限速器，首次立即放行，之后每次至少间隔 interval
func New(interval time.Duration) Waiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Seq 依次产出 items，每次产出前先等待 w；ctx 取消后停止
func Seq[T any](ctx context.Context, w Waiter, items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if err := w.Wait(ctx); err != nil {
				return
			}
			if !yield(item) {
				return
			}
		}
	}
}
