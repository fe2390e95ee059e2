package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/idea_radar/app/display/internal/conf"
	"github.com/iWorld-y/idea_radar/app/display/internal/service"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
)

//go:embed assets/*
var assets embed.FS

// NewHTTPServer 未配置 timeout 时按一次完整生成的最长耗时设置请求超时
func NewHTTPServer(c *conf.Server, rc *config.Config, s *service.IdeaService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Timeout(rc.RequestBudget()),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil && d > 0 {
				opts = append(opts, http.Timeout(d))
			} else {
				log.NewHelper(logger).Warnf("invalid server.http.timeout %q, using %s", c.Http.Timeout, rc.RequestBudget())
			}
		}
	}

	srv := http.NewServer(opts...)
	srv.Route("/").POST("/generate-idea", s.GenerateIdea)

	// 首页
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, err := assets.ReadFile("assets/index.html")
		if err != nil {
			nethttp.Error(w, err.Error(), nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}
