package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"saas-forecast/domain"
	"saas-forecast/repository"
)

const (
	defaultOracleURL   = "https://api.openai.com/v1/chat/completions"
	defaultOracleModel = "gpt-4o-mini"
	oracleCachePrefix  = "oracle:v1:"
)

const oracleSystemInstruction = "You are a world-class financial analyst and your task is to " +
	"transform a natural language query into a structured JSON response. " +
	"This structured data will be used by a financial modeling application to " +
	"calculate projections for a SaaS company. The company has two primary business units: " +
	"'large_customers' (direct sales model) and 'small_medium_customers' " +
	"(digital marketing model). " +
	"Your output must be only a valid JSON object, with no extra text or explanations, " +
	"with the keys time_horizon_months (number), revenue_drivers (array of {name, type, value, unit}), " +
	"assumptions (object with initial_sales_people, sales_people_growth_monthly, " +
	"customers_per_salesperson_per_month, revenue_per_large_customer, monthly_marketing_spend, " +
	"sales_inquiries_per_month, demo_rate, avg_revenue_per_small_customer), " +
	"business_focus (array of strings) and special_instructions (array of strings). " +
	"For all monetary values, remove the '$' sign and any commas. For percentage values, " +
	"just use the number without the '%' sign."

// LLMOracle asks an OpenAI compatible chat completions endpoint for forecast
// parameters. Successful answers are cached per query.
type LLMOracle struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	cache      repository.CacheRepository
	logger     *slog.Logger
}

type LLMOracleConfig struct {
	APIKey     string
	APIURL     string
	Model      string
	HTTPClient *http.Client
	Cache      repository.CacheRepository
	Logger     *slog.Logger
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewLLMOracle(cfg LLMOracleConfig) *LLMOracle {
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = defaultOracleURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOracleModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMOracle{
		apiKey:     cfg.APIKey,
		apiURL:     apiURL,
		model:      model,
		enabled:    cfg.APIKey != "",
		httpClient: client,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

// Enabled reports whether an API key was configured.
func (s *LLMOracle) Enabled() bool {
	return s.enabled
}

func (s *LLMOracle) Infer(ctx context.Context, query string) (domain.RawParameters, error) {
	if !s.enabled {
		return domain.RawParameters{}, domain.ErrOracleUnavailable
	}

	key := cacheKey(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			raw, err := decodeRawParameters(cached)
			if err == nil {
				return raw, nil
			}
			s.logger.WarnContext(ctx, "discarding unreadable cached oracle response", "error", err)
		}
	}

	content, err := s.callLLM(ctx, query)
	if err != nil {
		return domain.RawParameters{}, err
	}

	raw, err := decodeRawParameters(content)
	if err != nil {
		return domain.RawParameters{}, fmt.Errorf("decode oracle response: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, content); err != nil {
			s.logger.WarnContext(ctx, "failed to cache oracle response", "error", err)
		}
	}
	return raw, nil
}

func (s *LLMOracle) callLLM(ctx context.Context, query string) (string, error) {
	ctx, span := tracer.Start(ctx, "oracle.llm_call", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.model))

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: oracleSystemInstruction},
			{Role: "user", Content: query},
		},
		MaxTokens:      800,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("oracle API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no response from oracle")
	}
	return out.Choices[0].Message.Content, nil
}

// errEmptyOracleAnswer marks an answer that parsed but carries neither a
// time horizon nor assumptions.
var errEmptyOracleAnswer = errors.New("oracle answer has no time horizon or assumptions")

// decodeRawParameters parses the oracle's JSON object, tolerating a
// surrounding markdown code fence.
func decodeRawParameters(content string) (domain.RawParameters, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var raw domain.RawParameters
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil {
		return domain.RawParameters{}, err
	}
	if raw.TimeHorizonMonths == nil && len(raw.Assumptions) == 0 {
		return domain.RawParameters{}, errEmptyOracleAnswer
	}
	return raw, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return oracleCachePrefix + hex.EncodeToString(sum[:])
}
