package pypi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kgscaffold/kgscaffold/internal/validate"
)

//go:embed schema/project.schema.json
var projectSchemaBytes []byte

var projectSchema = validate.MustCompile("project.schema.json", projectSchemaBytes)

// maxBodyBytes caps how much of a response is read. Project documents for
// large packages list every release file, so this is generous.
const maxBodyBytes = 32 << 20

type projectResponse struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"info"`
}

// Latest fetches the latest version of name. It makes exactly one request.
// The version is returned as published, in PEP 440 form; it is not required
// to be a semantic version.
func (c *Client) Latest(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("package name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/pypi/%s/json", strings.TrimRight(c.baseURL, "/"), url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "kgscaffold")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("package %q not found on %s", name, c.baseURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("package index returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	result, err := projectSchema.ValidateJSON(body)
	if err != nil {
		return "", fmt.Errorf("malformed index response: %w", err)
	}
	if !result.Valid {
		return "", fmt.Errorf("unexpected index response: %s", result.Issues[0])
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return "", fmt.Errorf("parsing index response: %w", err)
	}

	return project.Info.Version, nil
}

// LatestOrFallback is Latest, except that every failure is logged as a
// warning and answered with fallback. It never returns an error.
func (c *Client) LatestOrFallback(ctx context.Context, name, fallback string) string {
	version, err := c.Latest(ctx, name)
	if err != nil {
		c.logger.Warn("could not fetch latest version, using fallback",
			"package", name, "fallback", fallback, "error", err)
		return fallback
	}
	c.logger.Debug("resolved latest version", "package", name, "version", version)
	return version
}
