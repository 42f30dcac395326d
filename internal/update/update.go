// Package update looks up the newest pdfscrub release.
package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	semver "github.com/blang/semver/v4"
)

const cacheFileName = "update.json"

// releaseURL is the GitHub API endpoint for the latest release.
var releaseURL = "https://api.github.com/repos/redactyl/pdfscrub/releases/latest"

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "pdfscrub")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "pdfscrub")
}

func loadCache() (cache, error) {
	var c cache
	dir := configDir()
	if dir == "" {
		return c, errors.New("no config dir")
	}
	b, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if err != nil {
		return c, err
	}
	_ = json.Unmarshal(b, &c)
	return c, nil
}

func saveCache(c cache) {
	dir := configDir()
	if dir == "" {
		return
	}
	_ = os.MkdirAll(dir, 0755)
	b, _ := json.MarshalIndent(c, "", "  ")
	_ = os.WriteFile(filepath.Join(dir, cacheFileName), b, 0644)
}

func latestVersionOnline() (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequest(http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "pdfscrub-version-check")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	v := obj.TagName
	if v == "" {
		v = obj.Name
	}
	return v, nil
}

// Check returns the latest known release and whether it is newer than
// current. Lookups are cached for 24h and skipped in CI.
func Check(current string) (string, bool, error) {
	if os.Getenv("CI") != "" {
		return "", false, nil
	}
	c, _ := loadCache()
	latest := c.Latest
	if time.Since(c.LastChecked) > 24*time.Hour || latest == "" {
		v, err := latestVersionOnline()
		if err != nil {
			return latest, false, err
		}
		latest = v
		c.Latest = latest
		c.LastChecked = time.Now()
		saveCache(c)
	}
	if latest == "" || current == "" {
		return latest, false, nil
	}
	newer, err := IsNewer(latest, current)
	return latest, newer, err
}

// IsNewer reports whether version a is greater than b. A leading "v" is
// accepted on either side.
func IsNewer(a, b string) (bool, error) {
	av, err := semver.ParseTolerant(a)
	if err != nil {
		return false, fmt.Errorf("parse version %q: %w", a, err)
	}
	bv, err := semver.ParseTolerant(b)
	if err != nil {
		return false, fmt.Errorf("parse version %q: %w", b, err)
	}
	return av.GT(bv), nil
}
