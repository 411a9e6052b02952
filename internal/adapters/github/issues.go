package github

import (
	"context"
	"fmt"
	"net/http"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
)

// GetIssue fetches a single issue by number
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (Issue, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Issue{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = discardBody(resp.Body)
		return Issue{}, perr.NotFoundf("issue %s/%s#%d not found", owner, repo, number)
	}
	var out Issue
	if err := c.decode(resp, path, &out); err != nil {
		return Issue{}, err
	}
	return out, nil
}

// ListOpenIssues fetches one page of open issues.
// The endpoint also returns PRs; callers skip entries with PullRequest set
func (c *Client) ListOpenIssues(ctx context.Context, owner, repo string, page, perPage int) ([]Issue, error) {
	if perPage <= 0 || perPage > pageSize {
		perPage = pageSize
	}
	page = max(page, 1)

	path := fmt.Sprintf("/repos/%s/%s/issues?state=open&per_page=%d&page=%d", owner, repo, perPage, page)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = discardBody(resp.Body)
		return nil, perr.NotFoundf("repo %s/%s not found", owner, repo)
	}
	var out []Issue
	if err := c.decode(resp, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
