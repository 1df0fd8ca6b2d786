// Package entity holds the audit and lifecycle fields shared by every
// soft-deletable table, and the rules for writing them.
package entity

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
)

const (
	StateActive   = "A"
	StateInactive = "I"
)

// DefaultStates is the allow-list used when a table does not declare its own.
var DefaultStates = []string{StateActive, StateInactive}

// NonUpdatableFields are owned by the audit machinery and can never be set
// through an update payload.
var NonUpdatableFields = []string{"created_at", "created_by", "updated_at", "updated_by"}

type Base struct {
	State     string     `gorm:"type:varchar(1);not null;default:'A'" json:"state"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	CreatedBy string     `gorm:"type:varchar(100)" json:"created_by"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	UpdatedBy *string    `gorm:"type:varchar(100)" json:"updated_by"`
}

func (b Base) IsActive() bool {
	return b.State == StateActive
}

var now = time.Now

func ValidateState(state string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = DefaultStates
	}
	if !slices.Contains(allowed, state) {
		return apperror.Newf(apperror.CodeInvalidInput, http.StatusBadRequest,
			"invalid state '%s', expected one of %s", state, strings.Join(allowed, ", "))
	}
	return nil
}

// PrepareCreate stamps the creator and creation time. An empty state
// defaults to Active; any other state must be in allowed.
func PrepareCreate(b *Base, actor string, allowed ...string) error {
	if b.State == "" {
		b.State = StateActive
	}
	if err := ValidateState(b.State, allowed...); err != nil {
		return err
	}
	b.CreatedAt = now()
	b.CreatedBy = actor
	b.UpdatedAt = nil
	b.UpdatedBy = nil
	return nil
}

// PrepareUpdate validates a partial update payload and returns the column
// map to persist, with the update audit columns stamped.
func PrepareUpdate(fields map[string]any, actor string, allowed ...string) (map[string]any, error) {
	out := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		key := strings.ToLower(strings.TrimSpace(k))
		if slices.Contains(NonUpdatableFields, key) {
			return nil, apperror.Newf(apperror.CodePayloadValidation, http.StatusBadRequest,
				"field '%s' can not be updated", key)
		}
		if key == "state" {
			s, ok := v.(string)
			if !ok {
				return nil, apperror.InvalidField("state")
			}
			if err := ValidateState(s, allowed...); err != nil {
				return nil, err
			}
		}
		out[key] = v
	}

	out["updated_at"] = now()
	out["updated_by"] = actor
	return out, nil
}

// Touch stamps the update audit columns on b.
func Touch(b *Base, actor string) {
	t := now()
	b.UpdatedAt = &t
	b.UpdatedBy = &actor
}
