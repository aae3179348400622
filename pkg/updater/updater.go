// Package updater checks GitHub for a newer nomofobia release.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/mod/semver"
)

// LatestReleaseURL is the GitHub API endpoint for the newest release.
const LatestReleaseURL = "https://api.github.com/repos/kraitsura/nomofobia/releases/latest"

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release endpoint. The zero value uses LatestReleaseURL
// with a two second timeout.
type Checker struct {
	Client *http.Client
	URL    string
}

// Check returns the latest release and whether it is newer than current.
// Versions that are not valid semver (for example "dev" builds) never report
// an update.
func (c Checker) Check(ctx context.Context, current string) (Release, bool, error) {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Second}
	}
	url := c.URL
	if url == "" {
		url = LatestReleaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, false, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return Release{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false, fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return Release{}, false, fmt.Errorf("decoding release: %w", err)
	}
	return rel, IsNewer(rel.TagName, current), nil
}

// IsNewer reports whether tag is a higher semver than current.
func IsNewer(tag, current string) bool {
	if !semver.IsValid(tag) || !semver.IsValid(current) {
		return false
	}
	return semver.Compare(tag, current) > 0
}
