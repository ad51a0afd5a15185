package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"reeltor/internal/domain"
)

// TextGenerator produces a JSON {subject, body} rewrite for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AdSource is the slice of the ad store the translator needs.
type AdSource interface {
	Recent(ctx context.Context, limit int) ([]domain.Ad, error)
	Update(ctx context.Context, ad *domain.Ad) error
}

type translation struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Translator rewrites recent ads in English through a text-generation
// service and stores the result via the coalescing update path.
type Translator struct {
	gen    TextGenerator
	ads    AdSource
	logger *slog.Logger
}

func New(gen TextGenerator, ads AdSource, logger *slog.Logger) *Translator {
	return &Translator{
		gen:    gen,
		ads:    ads,
		logger: logger.With("component", "translator"),
	}
}

// Run translates up to limit recent ads. Malformed or empty responses are
// logged and skipped, never retried; already-translated ads are left alone.
func (t *Translator) Run(ctx context.Context, limit int) error {
	ads, err := t.ads.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load recent ads: %w", err)
	}

	for i := range ads {
		ad := &ads[i]
		if ad.Translated {
			t.logger.Debug("ad already translated", "ad_id", ad.AdID)
			continue
		}

		prompt := fmt.Sprintf(
			"Translate this annonce in english: the annonce's title: %q; the annonce's body: %q",
			ad.Subject, ad.Body,
		)
		raw, err := t.gen.Generate(ctx, prompt)
		if err != nil {
			t.logger.Error("translation request failed", "ad_id", ad.AdID, "error", err)
			continue
		}

		var tr translation
		if err := json.Unmarshal([]byte(raw), &tr); err != nil || tr.Subject == "" || tr.Body == "" {
			t.logger.Warn("malformed translation response, skipped", "ad_id", ad.AdID)
			continue
		}

		ad.Merge(domain.ListingRecord{Subject: &tr.Subject, Body: &tr.Body})
		ad.Translated = true
		if err := t.ads.Update(ctx, ad); err != nil {
			t.logger.Error("failed to store translation", "ad_id", ad.AdID, "error", err)
			continue
		}
		t.logger.Info("ad translated", "ad_id", ad.AdID)
	}
	return nil
}
