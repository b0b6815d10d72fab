package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vancy-storefront/server/internal/stylist/model"
)

const maxContentLen = 64 * 1024

// ExtractJSON returns the first JSON value opening with open in content.
// Markdown code fences and surrounding prose are ignored.
func ExtractJSON(content string, open byte) (string, error) {
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}
	s := strings.TrimSpace(content)
	if i := strings.Index(s, "```"); i >= 0 {
		body := s[i+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			body = body[nl+1:]
		}
		if j := strings.Index(body, "```"); j >= 0 {
			body = body[:j]
		}
		s = strings.TrimSpace(body)
	}

	closing := byte('}')
	if open == '[' {
		closing = ']'
	}
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, closing)
	if start < 0 || end < start {
		return "", fmt.Errorf("no json %c...%c in model output", open, closing)
	}
	return s[start : end+1], nil
}

// ParseLookbook decodes a lookbook object. A lookbook without a vibe or
// items is rejected so the caller can fall back.
func ParseLookbook(content string) (model.Lookbook, error) {
	raw, err := ExtractJSON(content, '{')
	if err != nil {
		return model.Lookbook{}, err
	}
	var lb model.Lookbook
	if err := json.Unmarshal([]byte(raw), &lb); err != nil {
		return model.Lookbook{}, fmt.Errorf("decode lookbook: %w", err)
	}
	if strings.TrimSpace(lb.Vibe) == "" || len(lb.Items) == 0 {
		return model.Lookbook{}, fmt.Errorf("decode lookbook: missing vibe or items")
	}
	return lb, nil
}

// ParseRecommendations decodes a recommendation array, dropping entries
// without a category or reason.
func ParseRecommendations(content string) ([]model.Recommendation, error) {
	raw, err := ExtractJSON(content, '[')
	if err != nil {
		return nil, err
	}
	var recs []model.Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	out := make([]model.Recommendation, 0, len(recs))
	for _, r := range recs {
		if strings.TrimSpace(r.Category) == "" || strings.TrimSpace(r.Reason) == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
