package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/angelmondragon/ecomlytics-backend/pkg/config"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
)

const polishPrompt = `You are an analytics copilot. Rewrite the following rule-based diagnosis into a concise, interview-ready narrative.
- Keep it factual and consistent with the numbers.
- Use bullet points, then a short paragraph recommendation.
- Do not invent data.

RULE SUMMARY:
%s`

// Polisher rewrites a rule-based summary through an external text-generation
// endpoint. Every failure path returns the original text unchanged; callers
// never see an error from polishing.
type Polisher struct {
	cfg    config.NarrativeConfig
	client *http.Client
	logger *logger.Logger
}

func NewPolisher(cfg config.NarrativeConfig, logg *logger.Logger) *Polisher {
	return &Polisher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logg,
	}
}

type polishRequest struct {
	Model       string  `json:"model"`
	Input       string  `json:"input"`
	Temperature float64 `json:"temperature"`
}

type polishResponse struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Polish returns the polished text and true, or the rule summary and false
// when the call is disabled or fails in any way.
func (p *Polisher) Polish(ctx context.Context, ruleSummary string) (string, bool) {
	if p == nil || !p.cfg.Enabled() {
		return ruleSummary, false
	}

	body, err := json.Marshal(polishRequest{
		Model:       p.cfg.Model,
		Input:       fmt.Sprintf(polishPrompt, ruleSummary),
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		p.warn(ctx, "narrative polish request encode failed", err)
		return ruleSummary, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		p.warn(ctx, "narrative polish request build failed", err)
		return ruleSummary, false
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.warn(ctx, "narrative polish call failed", err)
		return ruleSummary, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.warn(ctx, fmt.Sprintf("narrative polish returned status %d", resp.StatusCode), nil)
		return ruleSummary, false
	}

	var parsed polishResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		p.warn(ctx, "narrative polish response decode failed", err)
		return ruleSummary, false
	}

	text := extractOutputText(parsed)
	if text == "" {
		p.warn(ctx, "narrative polish returned empty output", nil)
		return ruleSummary, false
	}
	return text, true
}

func extractOutputText(parsed polishResponse) string {
	var b strings.Builder
	for _, item := range parsed.Output {
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func (p *Polisher) warn(ctx context.Context, msg string, err error) {
	if p.logger == nil {
		return
	}
	if err != nil {
		ctx = p.logger.WithField(ctx, "error", err.Error())
	}
	p.logger.Warn(ctx, msg)
}
