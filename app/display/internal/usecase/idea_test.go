package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

// mockGenerator 模拟创意生成器
type mockGenerator struct {
	opts engine.RunOptions
	err  error
}

func (m *mockGenerator) Generate(ctx context.Context, opts engine.RunOptions) (*dm.IdeaResult, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	opts.ProgressCallback("completed", 100)
	return &dm.IdeaResult{Idea: &dm.IdeaRecord{Title: "Test Idea"}}, nil
}

func TestIdeaUseCase_Generate(t *testing.T) {
	gen := &mockGenerator{}
	uc := NewIdeaUseCase(gen, log.DefaultLogger)

	res, err := uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test Idea", res.Idea.Title)
	assert.False(t, gen.opts.Refresh)
	assert.NotNil(t, gen.opts.ProgressCallback)
}

func TestIdeaUseCase_GenerateError(t *testing.T) {
	cause := errors.New("boom")
	uc := NewIdeaUseCase(&mockGenerator{err: cause}, log.DefaultLogger)

	_, err := uc.Generate(context.Background())
	assert.ErrorIs(t, err, cause)
}
