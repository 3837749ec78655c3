package user

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
)

type Plan string

const (
	PlanFree    Plan = "Free"
	PlanPro     Plan = "Pro"
	PlanPremium Plan = "Premium"
)

// Plans lists every plan, cheapest first. New accounts start on PlanFree.
var Plans = []Plan{PlanFree, PlanPro, PlanPremium}

// ParsePlan matches a plan name case-insensitively.
func ParsePlan(name string) (Plan, error) {
	for _, p := range Plans {
		if strings.EqualFold(strings.TrimSpace(name), string(p)) {
			return p, nil
		}
	}
	return "", errors.NewValidationFieldError("plan", "invalid subscription plan "+name, errors.ErrCodeInvalidPlan)
}

type Subscription struct {
	Plan       Plan      `json:"plan"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (s *Service) GetSubscription(ctx context.Context, userID string) (*Subscription, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Subscription{Plan: u.Plan, AssignedAt: u.PlanAssignedAt}, nil
}

// UpgradePlan moves userID to the named plan and stamps the assignment time.
// Free cannot be chosen; choosing the current plan changes nothing and reports changed=false.
func (s *Service) UpgradePlan(ctx context.Context, userID, name string) (sub *Subscription, changed bool, err error) {
	next, err := ParsePlan(name)
	if err != nil {
		return nil, false, err
	}
	if next == PlanFree {
		return nil, false, errors.NewValidationFieldError("plan", "the Free plan cannot be selected as an upgrade", errors.ErrCodeInvalidPlan)
	}

	current, err := s.GetSubscription(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if current.Plan == next {
		return current, false, nil
	}

	at := s.now()
	if err := s.repo.UpdatePlan(ctx, userID, string(next), at); err != nil {
		if !stderrors.Is(err, errors.ErrUserNotFound) {
			s.logger.Error("failed to update plan", "user_id", userID, "plan", next, "error", err)
		}
		return nil, false, err
	}
	s.logger.Info("subscription upgraded", "user_id", userID, "from", current.Plan, "to", next)
	return &Subscription{Plan: next, AssignedAt: at}, true, nil
}
