package service

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/idea_radar/app/display/internal/usecase"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/aggregator"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/synth"
)

// IdeaReply POST /generate-idea 成功响应
type IdeaReply struct {
	Idea     *dm.IdeaRecord     `json:"idea"`
	Insights *dm.InsightSummary `json:"insights"`
}

// ErrorReply 失败响应
type ErrorReply struct {
	Error string `json:"error"`
}

// IdeaGenerator 由 usecase.IdeaUseCase 实现
type IdeaGenerator interface {
	Generate(ctx context.Context) (*dm.IdeaResult, error)
}

var _ IdeaGenerator = (*usecase.IdeaUseCase)(nil)

type IdeaService struct {
	uc  IdeaGenerator
	log *log.Helper
}

func NewIdeaService(uc *usecase.IdeaUseCase, logger log.Logger) *IdeaService {
	return newIdeaService(uc, logger)
}

func newIdeaService(uc IdeaGenerator, logger log.Logger) *IdeaService {
	return &IdeaService{uc: uc, log: log.NewHelper(logger)}
}

// GenerateIdea 处理 POST /generate-idea
func (s *IdeaService) GenerateIdea(ctx http.Context) error {
	res, err := s.uc.Generate(ctx)
	if err != nil {
		s.logFailure(ctx, err)
		return ctx.JSON(nethttp.StatusInternalServerError, ErrorReply{Error: err.Error()})
	}
	return ctx.JSON(nethttp.StatusOK, IdeaReply{Idea: res.Idea, Insights: res.Insights})
}

func (s *IdeaService) logFailure(ctx context.Context, err error) {
	l := s.log.WithContext(ctx)

	var mie *synth.MalformedIdeaError
	var mve *synth.ModelInvocationError
	switch {
	case errors.Is(err, aggregator.ErrNoDataCollected):
		l.Warnw("msg", "generate-idea failed", "kind", "no_data", "err", err)
	case errors.As(err, &mie):
		l.Errorw("msg", "generate-idea failed", "kind", "malformed_idea", "err", mie.Err, "raw", mie.Raw)
	case errors.As(err, &mve):
		l.Errorw("msg", "generate-idea failed", "kind", "model_invocation", "err", mve.Err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		l.Warnw("msg", "generate-idea failed", "kind", "canceled", "err", err)
	default:
		l.Errorw("msg", "generate-idea failed", "kind", "unknown", "err", err)
	}
}
