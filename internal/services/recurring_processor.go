package services

import (
	"context"
	"fmt"
	"log/slog"

	"aurum/internal/core"
	"aurum/internal/storage"

	"github.com/google/uuid"
)

// RecurringStore is the slice of storage the recurring worker needs.
type RecurringStore interface {
	ListAllRecurringTemplates(ctx context.Context) ([]storage.RecurringTemplate, error)
	CreateTransaction(ctx context.Context, t core.Transaction) error
	SetLastMaterialized(ctx context.Context, id string, d core.Date) error
}

// RecurringProcessor turns due recurring templates into stored transactions.
// Each template carries a watermark (last materialized date) so repeated runs
// never insert the same occurrence twice.
type RecurringProcessor struct {
	store RecurringStore
}

func NewRecurringProcessor(store RecurringStore) *RecurringProcessor {
	return &RecurringProcessor{store: store}
}

// ProcessDue materializes every occurrence due on or before now, across all
// owners. A failing template is logged and skipped; the run continues.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now core.Date) (int, error) {
	if p.store == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	templates, err := p.store.ListAllRecurringTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list recurring templates: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring templates",
		"total", len(templates),
		"processing_date", now.Format("2006-01-02"))

	processed := 0
	for _, tmpl := range templates {
		n, err := p.materialize(ctx, tmpl, now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to materialize recurring template",
				"id", tmpl.Transaction.ID,
				"error", err)
			continue
		}
		processed += n
	}

	slog.InfoContext(ctx, "Recurring template processing complete",
		"inserted", processed,
		"templates_checked", len(templates))

	return processed, nil
}

func (p *RecurringProcessor) materialize(ctx context.Context, tmpl storage.RecurringTemplate, now core.Date) (int, error) {
	// The template's own row covers its first occurrence; the watermark
	// covers everything the worker inserted on earlier runs.
	cutoff := tmpl.Transaction.Date
	if tmpl.LastMaterialized != nil && tmpl.LastMaterialized.After(cutoff.Time) {
		cutoff = *tmpl.LastMaterialized
	}

	occurrences, err := core.Expand(tmpl.Transaction, now)
	if err != nil {
		return 0, fmt.Errorf("expand template: %w", err)
	}

	inserted := 0
	var last core.Date
	for _, occ := range occurrences {
		if !occ.Date.After(cutoff.Time) {
			continue
		}

		occ.ID = uuid.NewString()
		if err := p.store.CreateTransaction(ctx, occ); err != nil {
			// Stop at the first failed insert so the watermark never
			// skips past an occurrence that was not stored.
			if inserted > 0 {
				if werr := p.store.SetLastMaterialized(ctx, tmpl.Transaction.ID, last); werr != nil {
					slog.ErrorContext(ctx, "Failed to advance watermark after partial run",
						"id", tmpl.Transaction.ID,
						"error", werr)
				}
			}
			return inserted, fmt.Errorf("insert occurrence %s: %w", occ.Date.Format("2006-01-02"), err)
		}

		last = occ.Date
		inserted++
	}

	if inserted > 0 {
		if err := p.store.SetLastMaterialized(ctx, tmpl.Transaction.ID, last); err != nil {
			return inserted, fmt.Errorf("advance watermark: %w", err)
		}
		slog.InfoContext(ctx, "Materialized recurring occurrences",
			"id", tmpl.Transaction.ID,
			"description", tmpl.Transaction.Description,
			"inserted", inserted,
			"watermark", last.Format("2006-01-02"))
	}

	return inserted, nil
}
