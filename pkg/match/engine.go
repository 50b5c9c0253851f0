package match

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobboard/pkg/llm"
)

const systemPrompt = "You are an expert HR assistant that analyzes resumes against job descriptions. Return the result strictly as JSON with no commentary."

// Engine produces match assessments through an external text-generation
// oracle. Assess never returns an error: every failure mode degrades to the
// zeroed fallback assessment so resume submission always succeeds.
type Engine struct {
	llm            llm.ChatModel
	logger         *zap.Logger
	maxPromptChars int
}

func NewEngine(model llm.ChatModel, logger *zap.Logger) *Engine {
	return &Engine{
		llm:            model,
		logger:         logger,
		maxPromptChars: 12_000,
	}
}

func (e *Engine) Assess(ctx context.Context, resumeText, jobDescription string) Assessment {
	resumeText = strings.TrimSpace(resumeText)
	if len(resumeText) > e.maxPromptChars {
		resumeText = resumeText[:e.maxPromptChars]
	}
	if len(jobDescription) > e.maxPromptChars {
		jobDescription = jobDescription[:e.maxPromptChars]
	}

	raw, err := e.llm.Ask(ctx, systemPrompt, buildPrompt(resumeText, jobDescription))
	if err != nil {
		e.logger.Warn("resume match oracle call failed", zap.Error(err))
		return Fallback(err.Error())
	}

	a, err := parseResponse(raw)
	if err != nil {
		e.logger.Warn("resume match oracle returned unparseable output",
			zap.Error(err),
			zap.Int("response_length", len(raw)),
		)
		return Fallback(err.Error())
	}
	return a
}

func buildPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Analyze the following resume against the job description.

Resume:
<<<
%s
>>>

Job Description:
<<<
%s
>>>

Return a single JSON object with exactly these fields:
- "match_percentage": number 0-100, how well the candidate's qualifications match the job requirements
- "skills_matched": array of skills present in the resume that the job requires
- "skills_missing": array of skills the job requires but the resume lacks
- "score": number 0-10, overall candidate score
- "recommendations": array of specific recommendations for the employer regarding this candidate
- "analysis": object with string values describing the candidate's experience, education and skills`,
		resumeText, jobDescription)
}

func parseResponse(raw string) (Assessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		// Last resort: the payload may be wrapped in prose. Take the outermost braces.
		if i := strings.Index(cleaned, "{"); i >= 0 {
			if j := strings.LastIndex(cleaned, "}"); j > i {
				if err2 := json.Unmarshal([]byte(cleaned[i:j+1]), &data); err2 == nil {
					return fromMap(data), nil
				}
			}
		}
		return Assessment{}, fmt.Errorf("parse oracle response: %w", err)
	}
	return fromMap(data), nil
}

func fromMap(data map[string]any) Assessment {
	a := Assessment{
		Score:           clamp(coerceFloat(data["score"]), 0, 10),
		MatchPercentage: clamp(coerceFloat(data["match_percentage"]), 0, 100),
		MatchedSkills:   coerceStrings(data["skills_matched"]),
		MissingSkills:   coerceStrings(data["skills_missing"]),
		Recommendations: coerceStrings(data["recommendations"]),
		Analysis:        coerceStringMap(data["analysis"]),
	}
	return a
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceStrings(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	case []string:
		out = append(out, val...)
	case string:
		if s := strings.TrimSpace(val); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceStringMap(v any) map[string]string {
	out := map[string]string{}
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			switch s := item.(type) {
			case string:
				out[k] = s
			default:
				if item != nil {
					b, err := json.Marshal(item)
					if err == nil {
						out[k] = string(b)
					}
				}
			}
		}
	case string:
		// Some models return the analysis as a single paragraph.
		if s := strings.TrimSpace(val); s != "" {
			out["summary"] = s
		}
	}
	return out
}
