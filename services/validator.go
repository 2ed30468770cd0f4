package services

import (
	"strconv"
	"strings"
	"unicode"

	"robot-order-bot/models"
	"robot-order-bot/utils"
)

// Validator normalizes raw CSV rows into submittable orders.
type Validator struct {
	logger *utils.Logger
}

// NewValidator creates a Validator with the given logger.
func NewValidator(logger *utils.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate trims and normalizes each order, dropping rows without a usable
// order number (the number keys every artifact, so a row without one has
// nowhere to put its receipt). Out-of-range head and body values are kept
// but logged: the form driver substitutes the default head, and a bad body
// value fails the submission attempt.
func (v *Validator) Validate(raw []*models.Order) []*models.Order {
	seen := make(map[string]struct{})
	result := make([]*models.Order, 0, len(raw))

	for _, r := range raw {
		o := &models.Order{
			Number:  strings.TrimSpace(r.Number),
			Head:    strings.TrimSpace(r.Head),
			Body:    strings.TrimSpace(r.Body),
			Legs:    strings.TrimSpace(r.Legs),
			Address: normaliseText(r.Address),
		}

		if o.Number == "" {
			v.logger.Warn("[validator] Dropping row with empty order number")
			continue
		}
		if _, err := strconv.Atoi(o.Number); err != nil {
			v.logger.Warn("[validator] Dropping row with non-numeric order number %q", o.Number)
			continue
		}

		if _, dup := seen[o.Number]; dup {
			v.logger.Warn("[validator] Duplicate order number %q — later artifacts will overwrite earlier ones", o.Number)
		}
		seen[o.Number] = struct{}{}

		if !inRange(o.Head) {
			v.logger.Warn("[validator] Order %s: head %q outside 1-6, the default option will be used", o.Number, o.Head)
		}
		if !inRange(o.Body) {
			v.logger.Warn("[validator] Order %s: body %q outside 1-6, submission will fail", o.Number, o.Body)
		}

		result = append(result, o)
	}

	v.logger.Info("[validator] Validated %d → %d orders (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

func inRange(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 6
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
