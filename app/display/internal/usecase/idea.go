package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

// Generator 创意生成端口，由 engine.Engine 实现
type Generator interface {
	Generate(ctx context.Context, opts engine.RunOptions) (*dm.IdeaResult, error)
}

// IdeaUseCase 创意生成业务逻辑
type IdeaUseCase struct {
	gen Generator
	log *log.Helper
}

// NewIdeaUseCase 创建创意生成业务逻辑实例
func NewIdeaUseCase(gen Generator, logger log.Logger) *IdeaUseCase {
	return &IdeaUseCase{gen: gen, log: log.NewHelper(logger)}
}

// Generate 基于最新信号生成一个创意，缓存有效时复用缓存数据
func (uc *IdeaUseCase) Generate(ctx context.Context) (*dm.IdeaResult, error) {
	return uc.gen.Generate(ctx, engine.RunOptions{
		ProgressCallback: func(status string, progress int) {
			uc.log.WithContext(ctx).Debugf("generate-idea %d%%: %s", progress, status)
		},
	})
}
