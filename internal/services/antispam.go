package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bulletinboard/internal/models"
)

// adCounter is the one read the gate performs: ads created from an IP in
// the trailing window.
type adCounter interface {
	CountByIPSince(ctx context.Context, ip string, since time.Time) (int64, error)
}

// AntiSpamGate is the admission policy evaluated once per ad creation,
// before anything is persisted. It records nothing itself; the ad row
// inserted after a pass is what later window counts see.
type AntiSpamGate struct {
	MinTitleLength       int
	MinDescriptionLength int
	MaxAdsPerHour        int
	Ads                  adCounter
}

// Check runs the content heuristics first and the rate-limit count last,
// so malformed input never costs a count query. A blank origin IP skips
// the rate check entirely; that is deliberate policy, not a gap.
func (g *AntiSpamGate) Check(ctx context.Context, title, description, ip string) error {
	if utf8.RuneCountInString(title) < g.MinTitleLength {
		return fmt.Errorf("%w: title must be at least %d characters long", models.ErrValidation, g.MinTitleLength)
	}
	if utf8.RuneCountInString(description) < g.MinDescriptionLength {
		return fmt.Errorf("%w: description must be at least %d characters long", models.ErrValidation, g.MinDescriptionLength)
	}

	if strings.TrimSpace(ip) == "" {
		return nil
	}

	count, err := g.Ads.CountByIPSince(ctx, ip, time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	if count >= int64(g.MaxAdsPerHour) {
		return fmt.Errorf("%w: maximum %d ads per hour allowed from the same IP address", models.ErrRateLimited, g.MaxAdsPerHour)
	}
	return nil
}
