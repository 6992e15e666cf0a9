package classifier

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	language "google.golang.org/api/language/v1"
	"google.golang.org/api/option"

	"github.com/fullstack0516/express-digital-asset-backend/internal/entity"
)

// GoogleClassifier calls the Cloud Natural Language API. Both requests treat
// the input as an HTML document.
type GoogleClassifier struct {
	svc         *language.Service
	limiter     *rate.Limiter
	maxEntities int
}

// NewGoogleClassifier builds a client authenticated with an API key.
// requestsPerSecond bounds outgoing calls; each classification costs two.
func NewGoogleClassifier(ctx context.Context, apiKey string, requestsPerSecond float64, maxEntities int) (*GoogleClassifier, error) {
	svc, err := language.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create language client: %w", err)
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &GoogleClassifier{
		svc:         svc,
		limiter:     rate.NewLimiter(limit, 2),
		maxEntities: maxEntities,
	}, nil
}

func (c *GoogleClassifier) ClassifyAndExtract(ctx context.Context, html string) (entity.Classification, error) {
	var out entity.Classification
	if strings.TrimSpace(html) == "" {
		return out, nil
	}
	doc := &language.Document{Type: "HTML", Content: html}

	if err := c.limiter.Wait(ctx); err != nil {
		return out, err
	}
	classified, err := c.svc.Documents.ClassifyText(&language.ClassifyTextRequest{Document: doc}).Context(ctx).Do()
	if err != nil {
		return out, fmt.Errorf("classify text: %w", err)
	}
	for _, cat := range classified.Categories {
		if cat == nil || cat.Name == "" || cat.Confidence <= 0 {
			continue
		}
		out.Categories = append(out.Categories, cat.Name)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return out, err
	}
	analyzed, err := c.svc.Documents.AnalyzeEntities(&language.AnalyzeEntitiesRequest{
		Document:     doc,
		EncodingType: "UTF8",
	}).Context(ctx).Do()
	if err != nil {
		return out, fmt.Errorf("analyze entities: %w", err)
	}
	out.Entities = collectEntities(analyzed.Entities, c.maxEntities)
	return out, nil
}

// collectEntities keeps taggable entities only, so ignored kinds never use
// up the limit.
func collectEntities(raw []*language.Entity, limit int) []entity.Entity {
	var out []entity.Entity
	for _, e := range raw {
		if e == nil {
			continue
		}
		candidate := entity.Entity{Name: e.Name, Salience: e.Salience, Kind: e.Type}
		if !candidate.Taggable() {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, candidate)
	}
	return out
}
