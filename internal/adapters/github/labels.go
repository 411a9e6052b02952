package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
)

const pageSize = 100

// decode reads at most 4 MiB of body into out, closing it either way
func (c *Client) decode(resp *http.Response, path string, out any) error {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if cerr := resp.Body.Close(); cerr != nil {
		c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
	}
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "github read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "github decode failed")
	}
	return nil
}

// listPages walks a paged collection endpoint until a short page arrives.
// absent is returned when the endpoint 404s
func listPages[T any](ctx context.Context, c *Client, pageURL func(page int) string, absent error) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		path := pageURL(page)
		resp, err := c.Do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusNotFound {
			_ = discardBody(resp.Body)
			return nil, absent
		}
		var chunk []T
		if err := c.decode(resp, path, &chunk); err != nil {
			return nil, err
		}
		all = append(all, chunk...)
		if len(chunk) < pageSize {
			return all, nil
		}
	}
}

// ListRepoLabels fetches every label defined on the repository
func (c *Client) ListRepoLabels(ctx context.Context, owner, repo string) ([]Label, error) {
	return listPages[Label](ctx, c, func(page int) string {
		return fmt.Sprintf("/repos/%s/%s/labels?per_page=%d&page=%d", owner, repo, pageSize, page)
	}, perr.NotFoundf("repo %s/%s not found", owner, repo))
}

// GetLabel fetches one repository label by name.
// Returns ok=false without error when the label does not exist
func (c *Client) GetLabel(ctx context.Context, owner, repo, name string) (Label, bool, error) {
	path := fmt.Sprintf("/repos/%s/%s/labels/%s", owner, repo, url.PathEscape(name))
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return Label{}, false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = discardBody(resp.Body)
		return Label{}, false, nil
	}
	var out Label
	if err := c.decode(resp, path, &out); err != nil {
		return Label{}, false, err
	}
	return out, true, nil
}

// CreateLabel creates a repository label.
// A 422 already_exists answer counts as success so ensure flows stay idempotent
func (c *Client) CreateLabel(ctx context.Context, owner, repo, name, color, description string) error {
	path := fmt.Sprintf("/repos/%s/%s/labels", owner, repo)
	payload := map[string]string{"name": name, "color": color, "description": description}
	resp, err := c.Do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		_ = discardBody(resp.Body)
		return perr.NotFoundf("repo %s/%s not found", owner, repo)
	case http.StatusUnprocessableEntity:
		var ve struct {
			Errors []struct {
				Code string `json:"code"`
			} `json:"errors"`
		}
		if err := c.decode(resp, path, &ve); err != nil {
			return err
		}
		for _, e := range ve.Errors {
			if e.Code == "already_exists" {
				return nil
			}
		}
		return perr.Newf(perr.ErrorCodeValidation, "github rejected label %q", name)
	default:
		return discardBody(resp.Body)
	}
}

// ListIssueLabels fetches the labels currently on an issue
func (c *Client) ListIssueLabels(ctx context.Context, owner, repo string, number int) ([]Label, error) {
	return listPages[Label](ctx, c, func(page int) string {
		return fmt.Sprintf("/repos/%s/%s/issues/%d/labels?per_page=%d&page=%d", owner, repo, number, pageSize, page)
	}, perr.NotFoundf("issue %s/%s#%d not found", owner, repo, number))
}

// AddIssueLabels adds labels to an issue, leaving existing labels in place
func (c *Client) AddIssueLabels(ctx context.Context, owner, repo string, number int, names []string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels", owner, repo, number)
	resp, err := c.Do(ctx, http.MethodPost, path, map[string][]string{"labels": names})
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		_ = discardBody(resp.Body)
		return perr.NotFoundf("issue %s/%s#%d not found", owner, repo, number)
	case http.StatusUnprocessableEntity:
		_ = discardBody(resp.Body)
		return perr.Newf(perr.ErrorCodeValidation, "github rejected labels on %s/%s#%d", owner, repo, number)
	default:
		return discardBody(resp.Body)
	}
}

// RemoveIssueLabel removes one label from an issue.
// A 404 means the label is already gone and is not an error
func (c *Client) RemoveIssueLabel(ctx context.Context, owner, repo string, number int, name string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/labels/%s", owner, repo, number, url.PathEscape(name))
	resp, err := c.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return discardBody(resp.Body)
}
