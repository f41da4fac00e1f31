package onboarding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/The-Zed-Team/kriyado-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is the derived onboarding state: the overall flag plus completion
// per step, keyed by step name.
type Result struct {
	IsOnboarded bool            `json:"is_onboarded"`
	Steps       map[string]bool `json:"step_status"`
}

// Evaluator walks the declared step graph against a vendor's related-entity
// tree. Safe to call after every branch or profile mutation: evaluation is
// side-effect free except for the one-way false->true persistence of
// Vendor.IsOnboarded.
type Evaluator struct {
	db    *gorm.DB
	steps []Step
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db, steps: DefaultSteps()}
}

// Evaluate loads the vendor tree, derives the onboarding result, and
// persists the flag (field-only write, never a full-row save) when the
// vendor just became fully onboarded.
func (e *Evaluator) Evaluate(ctx context.Context, vendorID uuid.UUID) (Result, error) {
	var vendor models.Vendor
	if err := e.db.WithContext(ctx).
		Preload("DefaultBranch").
		Preload("DefaultBranch.Profile").
		First(&vendor, "id = ?", vendorID).Error; err != nil {
		return Result{}, fmt.Errorf("failed to load vendor: %w", err)
	}

	res := EvaluateSteps(&vendor, e.steps)

	if res.IsOnboarded && !vendor.IsOnboarded {
		if err := e.db.WithContext(ctx).
			Model(&models.Vendor{}).
			Where("id = ?", vendor.ID).
			UpdateColumn("is_onboarded", true).Error; err != nil {
			return Result{}, fmt.Errorf("failed to persist onboarding flag: %w", err)
		}
		slog.Info("vendor onboarding completed", "vendor_id", vendor.ID.String())
	}

	return res, nil
}

// EvaluateSteps is the pure evaluation core. A vendor that is already
// flagged onboarded latches: every step reports complete without
// re-derivation, no matter what the data looks like now.
func EvaluateSteps(vendor *models.Vendor, steps []Step) Result {
	res := Result{Steps: make(map[string]bool, len(steps))}

	if vendor != nil && vendor.IsOnboarded {
		for _, step := range steps {
			res.Steps[step.Name] = true
		}
		res.IsOnboarded = true
		return res
	}

	res.IsOnboarded = true
	for _, step := range steps {
		complete := true
		for _, field := range step.Fields {
			if !field.Required {
				continue
			}
			if !field.Resolve(vendor).Present() {
				complete = false
				break
			}
		}
		res.Steps[step.Name] = complete
		if !complete {
			res.IsOnboarded = false
		}
	}
	return res
}
