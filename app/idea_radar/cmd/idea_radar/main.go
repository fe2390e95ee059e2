package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/config"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/engine"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

var (
	cfgPath  string
	refresh  bool
	htmlPath string
)

func main() {
	root := &cobra.Command{
		Use:           "idea_radar",
		Short:         "Collect market signals and generate a SaaS idea",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "app/idea_radar/configs/config.yaml", "config path")
	root.PersistentFlags().BoolVar(&refresh, "refresh", false, "ignore cached data and fetch all sources")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a business idea from the latest signals",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&htmlPath, "html", "", "also render the idea to this HTML file")

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect raw signals and print them as JSON",
		RunE:  runCollect,
	}

	root.AddCommand(generateCmd, collectCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup 加载配置并初始化日志
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		cfg.ApplyEnv()
	} else if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	logger.Log.Info("启动创意雷达...")

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := eng.Generate(ctx, engine.RunOptions{
		Refresh: refresh,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Infof("进度 %3d%%: %s", progress, status)
		},
	})
	if err != nil {
		return err
	}

	if htmlPath != "" {
		if err := renderHTML(htmlPath, res); err != nil {
			return fmt.Errorf("生成 HTML 失败: %w", err)
		}
		logger.Log.Infof("✅ 创意报告生成完毕: %s", htmlPath)
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	// 只采集时不需要 LLM 凭证
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = "unused"
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	dataset, err := eng.Collect(ctx, refresh)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), dataset)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const htmlTpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Idea Radar | {{ .Idea.Title }}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #1e293b; background: #f8fafc; }
        .card { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 24px; margin-bottom: 24px; }
        .meta { color: #64748b; font-size: 0.9em; }
        .terms span { display: inline-block; background: #eff6ff; color: #2563eb; border-radius: 12px; padding: 2px 10px; margin: 2px; }
        a { color: #2563eb; text-decoration: none; }
    </style>
</head>
<body>
    <p class="meta">{{ .Date }}</p>
    <div class="card">
        <h1>{{ .Idea.Title }}</h1>
        <p>{{ .Idea.Description }}</p>
        <h3>Target market</h3>
        <p>{{ .Idea.TargetMarket }}</p>
        <h3>Key features</h3>
        <ul>{{ range .Idea.KeyFeatures }}<li>{{ . }}</li>{{ end }}</ul>
        <h3>Tech stack</h3>
        <ul>{{ range .Idea.TechStack }}<li>{{ . }}</li>{{ end }}</ul>
    </div>
    <div class="card">
        <h3>Trending terms</h3>
        <div class="terms">{{ range .Insights.TrendingTerms }}<span>{{ . }}</span>{{ end }}</div>
        <h3>Signals</h3>
        <ul>{{ range .Insights.TopItems }}<li><a href="{{ .URL }}" target="_blank">{{ .Title }}</a> <span class="meta">({{ .SourceLabel }})</span></li>{{ end }}</ul>
    </div>
</body>
</html>`

// renderHTML 渲染模板
func renderHTML(path string, res *dm.IdeaResult) error {
	t, err := template.New("idea").Parse(htmlTpl)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct {
		Date string
		*dm.IdeaResult
	}{
		Date:       time.Now().Format("2006-01-02"),
		IdeaResult: res,
	}
	return t.Execute(f, data)
}
