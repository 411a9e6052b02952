package github

import (
	"context"
	"fmt"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
)

// ListIssueEvents fetches the full event history of an issue.
// Callers filter for the event kinds they care about
func (c *Client) ListIssueEvents(ctx context.Context, owner, repo string, number int) ([]IssueEvent, error) {
	return listPages[IssueEvent](ctx, c, func(page int) string {
		return fmt.Sprintf("/repos/%s/%s/issues/%d/events?per_page=%d&page=%d", owner, repo, number, pageSize, page)
	}, perr.NotFoundf("issue %s/%s#%d not found", owner, repo, number))
}
