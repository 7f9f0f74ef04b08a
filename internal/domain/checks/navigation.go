package checks

import (
	"context"
	"fmt"

	"github.com/deaffirst/deafcheck/internal/domain"
)

const (
	navMetaRefreshPenalty = 6.0
	navCountdownCap       = 8.0
	navSkipLinkPenalty    = 5.0
	navFocusOrderCap      = 9.0
)

// NavigationLogic flags time-limited interactions and rewards skip
// navigation and a consistent focus order. Time pressure penalizes users
// who navigate visually or through an interpreter.
type NavigationLogic struct{}

func (NavigationLogic) Category() domain.Category { return domain.CategoryNavigationLogic }

func (c NavigationLogic) Analyze(_ context.Context, content *domain.ParsedContent) domain.CheckerResult {
	fs := newFindingSet(domain.CategoryNavigationLogic)

	c.checkTimeLimits(fs, content)
	c.checkSkipNavigation(fs, content)
	c.checkFocusOrder(fs, content)

	return fs.result()
}

func (NavigationLogic) checkTimeLimits(fs *findingSet, content *domain.ParsedContent) {
	if content.MetaRefresh {
		fs.add(domain.SeverityBlocking, "time_limit", "meta[http-equiv=refresh]",
			"page uses a meta refresh; timed redirects cannot be paused or extended",
			navMetaRefreshPenalty, navMetaRefreshPenalty)
	}
	for _, el := range content.CountdownMarkers {
		fs.add(domain.SeverityWarning, "countdown", el,
			"countdown or session-timeout behavior detected; offer a way to extend or disable the limit",
			4, navCountdownCap)
	}
}

func (NavigationLogic) checkSkipNavigation(fs *findingSet, content *domain.ParsedContent) {
	if content.HasSkipLink {
		return
	}
	fs.add(domain.SeverityWarning, "skip_navigation", "",
		"no skip-navigation link found", navSkipLinkPenalty, navSkipLinkPenalty)
}

func (NavigationLogic) checkFocusOrder(fs *findingSet, content *domain.ParsedContent) {
	for _, ctrl := range content.Controls {
		if ctrl.HasTabIndex && ctrl.TabIndex > 0 {
			fs.add(domain.SeverityWarning, "focus_order", ctrl.Element,
				fmt.Sprintf("%s overrides focus order with tabindex=%d; positive tabindex breaks consistent traversal", ctrl.Element, ctrl.TabIndex),
				3, navFocusOrderCap)
		}
	}
}
