package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	narrationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "madrasah",
		Subsystem: "ai",
		Name:      "narration_duration_seconds",
		Help:      "Duration of AI report narration requests",
	}, []string{"model"})

	narrationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "madrasah",
		Subsystem: "ai",
		Name:      "narration_failures_total",
		Help:      "Number of AI report narration failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI narrator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAINarrator implements Narrator against the OpenAI chat completion API.
type OpenAINarrator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAINarrator builds a new narrator using the provided configuration.
func NewOpenAINarrator(cfg OpenAIConfig) (*OpenAINarrator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 768
	}

	tracer := otel.Tracer("github.com/noah-isme/madrasah-go-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAINarrator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Narrate sends the report request to OpenAI and returns the prose response.
func (n *OpenAINarrator) Narrate(parent context.Context, input ReportInput) (Narrative, error) {
	ctx, span := n.tracer.Start(parent, "openai.narrate", trace.WithAttributes(
		attribute.String("model", n.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       n.cfg.Model,
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: n.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: narratorSystemPrompt(input.Language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildReportPrompt(input),
			},
		},
	}

	resp, err := n.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	narrationDuration.WithLabelValues(n.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		narrationFailures.WithLabelValues(n.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Narrative{}, fmt.Errorf("openai narrate: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		narrationFailures.WithLabelValues(n.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Narrative{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		err := fmt.Errorf("empty narration returned from openai")
		narrationFailures.WithLabelValues(n.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Narrative{}, err
	}

	return Narrative{
		Content: content,
		Raw: map[string]interface{}{
			"model": resp.Model,
			"usage": resp.Usage,
		},
	}, nil
}

func narratorSystemPrompt(language string) string {
	if language == "ar" {
		return "أنت مرشد طلابي تكتب تقريراً موجزاً عن حالة الطالب بالاعتماد حصراً على " +
			"الأرقام المعطاة. اكتب فقرتين قصيرتين بلغة مهذبة موجهة لولي الأمر ولا تختلق أي معلومة."
	}
	return "You are a student counselor writing a short progress report for a parent. " +
		"Use only the numbers provided; write two short, polite paragraphs and never invent data."
}

func buildReportPrompt(input ReportInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Student\n")
	builder.WriteString(fmt.Sprintf("%s (%s - %s)\n", input.StudentName, input.Grade, input.ClassName))
	builder.WriteString("\n## Attendance\n")
	builder.WriteString(fmt.Sprintf("present days: %d\n", input.PresentDays))
	builder.WriteString(fmt.Sprintf("unexcused absences: %d\n", input.UnexcusedAbsences))
	builder.WriteString(fmt.Sprintf("excused absences: %d\n", input.ExcusedAbsences))
	builder.WriteString(fmt.Sprintf("late arrivals: %d\n", input.LateCount))
	builder.WriteString(fmt.Sprintf("exit permissions used: %d\n", input.ExitCount))
	builder.WriteString("\n## Behavior\n")
	builder.WriteString(fmt.Sprintf("points total: %d\n", input.PointsTotal))
	if input.LatestViolation != "" {
		builder.WriteString(fmt.Sprintf("latest violation: %s\n", input.LatestViolation))
	}
	if input.LatestObservation != "" {
		builder.WriteString(fmt.Sprintf("latest observation: %s\n", input.LatestObservation))
	}
	builder.WriteString("\nWrite the report now.")
	return builder.String()
}
