// Package markdown renders destinations and favorites lists as Markdown
// travel notes with YAML front-matter.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-ports/gomate/internal/models"
	"github.com/go-ports/gomate/internal/preferences"
)

// RenderDestination produces a single ### heading block for d with labels
// in lang.
func RenderDestination(d models.Destination, lang models.Language) string {
	tr := func(key string) string { return preferences.Translate(lang, key) }

	var sb strings.Builder
	sb.WriteString("### ")
	sb.WriteString(d.Name)
	fmt.Fprintf(&sb, "\n*%s* · %.1f★", d.Location, d.Rating)
	if d.Status != "" {
		sb.WriteString(" · ")
		sb.WriteString(d.Status)
	}
	sb.WriteString("\n\n")
	if d.FullDescription != "" {
		sb.WriteString(d.FullDescription)
	} else {
		sb.WriteString(d.Description)
	}
	if d.BestTimeToVisit != "" {
		fmt.Fprintf(&sb, "\n\n**%s:** %s", tr("bestTimeToVisit"), d.BestTimeToVisit)
	}
	if len(d.Transport) > 0 {
		sep := "\n\n"
		if d.BestTimeToVisit != "" {
			sep = "\n"
		}
		fmt.Fprintf(&sb, "%s**%s:** %s", sep, tr("transport"), strings.Join(d.Transport, ", "))
	}
	if len(d.Highlights) > 0 {
		fmt.Fprintf(&sb, "\n\n**%s:**\n", tr("highlights"))
		for _, h := range d.Highlights {
			sb.WriteString("- ")
			sb.WriteString(h)
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// frontmatter is the YAML header of an exported favorites file.
type frontmatter struct {
	Title      string   `yaml:"title"`
	Owner      string   `yaml:"owner,omitempty"`
	Exported   string   `yaml:"exported"`
	Language   string   `yaml:"language"`
	Count      int      `yaml:"count"`
	Categories []string `yaml:"categories"`
}

// RenderFavorites produces a complete Markdown document listing dests
// grouped by category in first-appearance order.
func RenderFavorites(dests []models.Destination, owner string, lang models.Language, now time.Time) (string, error) {
	tr := func(key string) string { return preferences.Translate(lang, key) }

	var categories []string
	groups := make(map[string][]models.Destination)
	for _, d := range dests {
		if _, ok := groups[d.Category]; !ok {
			categories = append(categories, d.Category)
		}
		groups[d.Category] = append(groups[d.Category], d)
	}

	fm, err := yaml.Marshal(frontmatter{
		Title:      tr("favorites"),
		Owner:      owner,
		Exported:   now.UTC().Format(time.RFC3339),
		Language:   string(lang),
		Count:      len(dests),
		Categories: append([]string{}, categories...),
	})
	if err != nil {
		return "", fmt.Errorf("RenderFavorites: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n# ")
	sb.WriteString(tr("favorites"))
	sb.WriteString("\n")

	if len(dests) == 0 {
		sb.WriteString("\n_")
		sb.WriteString(tr("noFavorites"))
		sb.WriteString("_\n")
		return sb.String(), nil
	}

	for _, cat := range categories {
		sb.WriteString("\n## ")
		sb.WriteString(tr(cat))
		sb.WriteString("\n")
		for _, d := range groups[cat] {
			sb.WriteString("\n")
			sb.WriteString(RenderDestination(d, lang))
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- favorites exports do not contain secrets
}
