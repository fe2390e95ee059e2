package server

import (
	"context"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/idea_radar/app/display/internal/conf"
	"github.com/iWorld-y/idea_radar/app/display/internal/service"
	"github.com/iWorld-y/idea_radar/app/display/internal/usecase"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

type fakeGenerator struct {
	delay time.Duration
}

func (g fakeGenerator) Generate(ctx context.Context, opts engine.RunOptions) (*dm.IdeaResult, error) {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &dm.IdeaResult{
		Idea:     &dm.IdeaRecord{Title: "ChurnPilot"},
		Insights: &dm.InsightSummary{TrendingTerms: []string{}},
	}, nil
}

func newServer(c *conf.Server, gen fakeGenerator) nethttp.Handler {
	uc := usecase.NewIdeaUseCase(gen, log.DefaultLogger)
	svc := service.NewIdeaService(uc, log.DefaultLogger)
	return NewHTTPServer(c, config.Default(), svc, log.DefaultLogger)
}

func newTestServer() nethttp.Handler {
	return newServer(&conf.Server{Http: &conf.HTTP{Timeout: "5s"}}, fakeGenerator{})
}

func TestHTTPServerIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/", nil))

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/generate-idea")
}

func TestHTTPServerGenerateIdea(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/generate-idea", nil))

	require.Equal(t, nethttp.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `"title":"ChurnPilot"`))
}

func TestHTTPServerDefaultTimeoutOutlastsSlowGeneration(t *testing.T) {
	// 未配置 timeout 时不能退回 kratos 的 1s 默认值
	h := newServer(&conf.Server{Http: &conf.HTTP{Addr: "0.0.0.0:3000"}}, fakeGenerator{delay: 1500 * time.Millisecond})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/generate-idea", nil))

	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"title":"ChurnPilot"`)
}

func TestHTTPServerExplicitTimeout(t *testing.T) {
	h := newServer(&conf.Server{Http: &conf.HTTP{Timeout: "100ms"}}, fakeGenerator{delay: time.Second})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodPost, "/generate-idea", nil))

	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "context deadline exceeded")
}

func TestRadarConfig(t *testing.T) {
	t.Setenv("IDEA_RADAR_LLM_API_KEY", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("IDEA_RADAR_LLM_MODEL", "")

	pacing := int32(250)
	cfg := RadarConfig(&conf.Radar{
		Llm:     &conf.LLM{ApiKey: "k", Model: "gpt-4o"},
		Sources: &conf.Sources{Forums: []string{"SaaS"}, PacingMillis: &pacing},
		Cache:   &conf.Cache{ValidityHours: 2},
	})
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, []string{"SaaS"}, cfg.Sources.Forums)
	assert.Equal(t, 250*time.Millisecond, cfg.Sources.Pacing())
	assert.Equal(t, 2, cfg.Cache.ValidityHours)
	// 未配置的字段取默认值
	assert.Equal(t, float32(0.7), cfg.LLM.GenerationTemperature())
	assert.NotEmpty(t, cfg.Sources.Syndication)
	assert.Equal(t, "data/cache.json", cfg.Cache.Path)
}

func TestRadarConfigNil(t *testing.T) {
	cfg := RadarConfig(nil)
	assert.Equal(t, 500, cfg.LLM.MaxOutputTokens)
	assert.Len(t, cfg.Sources.Forums, 3)
}

func TestRadarConfigExplicitZeros(t *testing.T) {
	zeroTemp, zeroPacing := float32(0), int32(0)
	cfg := RadarConfig(&conf.Radar{
		Llm:     &conf.LLM{Temperature: &zeroTemp},
		Sources: &conf.Sources{PacingMillis: &zeroPacing},
	})
	assert.Equal(t, float32(0), cfg.LLM.GenerationTemperature())
	assert.Equal(t, time.Duration(0), cfg.Sources.Pacing())
}
