package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeWaiter 记录等待次数，不做真实休眠
type fakeWaiter struct {
	calls int
}

func (f *fakeWaiter) Wait(ctx context.Context) error {
	f.calls++
	return ctx.Err()
}

func TestSeqWaitsBeforeEachItem(t *testing.T) {
	w := &fakeWaiter{}
	var got []string
	for s := range Seq(context.Background(), w, []string{"a", "b", "c"}) {
		got = append(got, s)
		assert.Equal(t, len(got), w.calls)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSeqStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := &fakeWaiter{}

	var got []int
	for n := range Seq(ctx, w, []int{1, 2, 3}) {
		got = append(got, n)
		cancel()
	}
	assert.Equal(t, []int{1}, got)
}

func TestSeqBreak(t *testing.T) {
	w := &fakeWaiter{}
	for range Seq(context.Background(), w, []int{1, 2, 3}) {
		break
	}
	assert.Equal(t, 1, w.calls)
}

func TestNewEnforcesInterval(t *testing.T) {
	interval := 40 * time.Millisecond
	w := New(interval)

	start := time.Now()
	n := 0
	for range Seq(context.Background(), w, []int{1, 2, 3}) {
		n++
	}
	elapsed := time.Since(start)

	assert.Equal(t, 3, n)
	// 首次立即放行，后两次各等待一个间隔
	assert.GreaterOrEqual(t, elapsed, 2*interval-5*time.Millisecond)
}

func TestNewZeroInterval(t *testing.T) {
	w := New(0)
	start := time.Now()
	for range Seq(context.Background(), w, make([]int, 50)) {
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
