package github

import (
	"context"
	"fmt"
	"net/http"
)

// CollaboratorPermission fetches the permission level a user has on the repo.
// Returns "none" when the user is not a collaborator (404)
func (c *Client) CollaboratorPermission(ctx context.Context, owner, repo, login string) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/collaborators/%s/permission", owner, repo, login)
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = discardBody(resp.Body)
		return "none", nil
	}
	var out Permission
	if err := c.decode(resp, path, &out); err != nil {
		return "", err
	}
	return out.Permission, nil
}
