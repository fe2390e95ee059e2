package synth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	dm "github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

// SystemInstruction 固定的系统指令，描述期望的创意结构
const SystemInstruction = `You are a startup idea generator for solo entrepreneurs. Using the market signals provided, generate one unique, innovative SaaS business idea that solves a specific problem.
Respond with ONLY a JSON object, without markdown fences or commentary, in exactly this shape:
{
	"title": "short product name",
	"description": "2-3 sentences describing the problem and the solution",
	"targetMarket": "who pays for it",
	"keyFeatures": ["feature 1", "feature 2", "feature 3"],
	"techStack": ["technology 1", "technology 2"]
}
keyFeatures must contain 3 to 4 items.`

// ChatModel 生成式模型，eino 的 ChatModel 实现均满足该接口
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// GenerationConfig 模型调用参数
type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int
}

// DefaultGenerationConfig {temperature: 0.7, maxOutputTokens: 500}
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.7, MaxOutputTokens: 500}
}

// ModelInvocationError 模型调用失败
type ModelInvocationError struct {
	Err error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

// MalformedIdeaError 模型输出无法解析为创意结构，Raw 保存原始输出
type MalformedIdeaError struct {
	Raw string
	Err error
}

func (e *MalformedIdeaError) Error() string {
	return fmt.Sprintf("malformed idea: %v", e.Err)
}

func (e *MalformedIdeaError) Unwrap() error {
	return e.Err
}

// Synthesizer 根据洞察汇总生成商业创意
type Synthesizer struct {
	cm      ChatModel
	cfg     GenerationConfig
	limiter *rate.Limiter
}

// New 创建 Synthesizer；limiter 可以为 nil
func New(cm ChatModel, cfg GenerationConfig, limiter *rate.Limiter) *Synthesizer {
	return &Synthesizer{cm: cm, cfg: cfg, limiter: limiter}
}

// Synthesize 构造 Prompt、调用模型并解析输出
func (s *Synthesizer) Synthesize(ctx context.Context, summary *dm.InsightSummary) (*dm.IdeaRecord, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &ModelInvocationError{Err: err}
		}
	}

	messages := []*schema.Message{
		schema.SystemMessage(SystemInstruction),
		schema.UserMessage(BuildPrompt(summary)),
	}

	resp, err := s.cm.Generate(ctx, messages,
		model.WithTemperature(s.cfg.Temperature),
		model.WithMaxTokens(s.cfg.MaxOutputTokens),
	)
	if err != nil {
		return nil, &ModelInvocationError{Err: err}
	}
	if resp == nil {
		return nil, &ModelInvocationError{Err: errors.New("empty response")}
	}

	idea, err := ParseIdea(resp.Content)
	if err != nil {
		logger.Failure("模型输出解析失败", fmt.Errorf("%w, content: %s", err, resp.Content))
		return nil, err
	}
	return idea, nil
}

// BuildPrompt 由洞察汇总构造用户 Prompt，输出是确定的
func BuildPrompt(summary *dm.InsightSummary) string {
	titles := make([]string, 0, len(summary.TopItems))
	for _, item := range summary.TopItems {
		titles = append(titles, item.Title)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Trending terms: %s\n", strings.Join(summary.TrendingTerms, ", "))
	fmt.Fprintf(&sb, "Market insights: %s\n", strings.Join(titles, ". "))
	fmt.Fprintf(&sb, "Signals analysed: forum=%d, syndication=%d, launchFeed=%d\n\n",
		summary.SourceCounts[dm.KindForum],
		summary.SourceCounts[dm.KindSyndication],
		summary.SourceCounts[dm.KindLaunchFeed])
	sb.WriteString("Generate a novel SaaS business idea for a solo entrepreneur with potential for growth and minimal initial investment. ")
	sb.WriteString("Ground it in the trends and insights above and list 3-4 key features.")
	return sb.String()
}

// ParseIdea 严格解析模型输出，缺字段视为格式错误
func ParseIdea(raw string) (*dm.IdeaRecord, error) {
	content := cleanJSONResponse(raw)

	var idea dm.IdeaRecord
	if err := json.Unmarshal([]byte(content), &idea); err != nil {
		return nil, &MalformedIdeaError{Raw: raw, Err: fmt.Errorf("json unmarshal: %w", err)}
	}

	var missing []string
	if strings.TrimSpace(idea.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(idea.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(idea.TargetMarket) == "" {
		missing = append(missing, "targetMarket")
	}
	if len(idea.KeyFeatures) == 0 {
		missing = append(missing, "keyFeatures")
	}
	if len(idea.TechStack) == 0 {
		missing = append(missing, "techStack")
	}
	if len(missing) > 0 {
		return nil, &MalformedIdeaError{Raw: raw, Err: fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))}
	}
	return &idea, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
