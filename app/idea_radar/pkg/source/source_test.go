package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

type failing struct{}

func (failing) Name() string           { return "https://feeds.example.com/rss" }
func (failing) Kind() model.SourceKind { return model.KindSyndication }
func (f failing) Fetch(ctx context.Context) ([]model.SourceRecord, error) {
	return nil, NewFetchError(f, errors.New("connection refused"))
}

func TestCollectAbsorbsErrors(t *testing.T) {
	records := Collect(context.Background(), failing{})
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetchError(failing{}, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch syndication source https://feeds.example.com/rss: connection refused", err.Error())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "こんにちは", Truncate("こんにちは世界", 5))
	assert.Equal(t, "", Truncate("", 5))
}
