package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/skillpath/internal/types"
)

// maxDescriptionLen caps extracted descriptions so a page dumping its whole
// body into a meta tag does not bloat the corpus.
const maxDescriptionLen = 500

// ExtractResource parses a fetched page into a learning resource draft.
// Title and description come from Open Graph tags with plain-HTML fallbacks;
// the resource type is inferred from the page and URL. Skill IDs and rating
// are left for the curator to fill in.
func ExtractResource(html, pageURL string) (*types.LearningResource, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = cleanWhitespace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = cleanWhitespace(doc.Find("h1").First().Text())
	}
	if title == "" {
		return nil, fmt.Errorf("page has no usable title: %s", pageURL)
	}

	description := metaContent(doc, `meta[property="og:description"]`)
	if description == "" {
		description = metaContent(doc, `meta[name="description"]`)
	}
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen-3] + "..."
	}

	var tags []string
	if keywords := metaContent(doc, `meta[name="keywords"]`); keywords != "" {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(strings.ToLower(kw)); kw != "" {
				tags = append(tags, kw)
			}
		}
	}

	return &types.LearningResource{
		ID:          ResourceID(pageURL),
		Title:       title,
		Description: description,
		Type:        inferType(doc, pageURL),
		URL:         pageURL,
		Tags:        tags,
	}, nil
}

// ResourceID derives a stable corpus ID from the resource URL.
func ResourceID(pageURL string) string {
	hash := sha256.Sum256([]byte(pageURL))
	return "res_" + hex.EncodeToString(hash[:])[:12]
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return cleanWhitespace(content)
}

// inferType guesses the resource type from Open Graph hints and URL shape.
// Unknown pages default to article.
func inferType(doc *goquery.Document, pageURL string) types.ResourceType {
	lowered := strings.ToLower(pageURL)

	if ogType := metaContent(doc, `meta[property="og:type"]`); strings.Contains(ogType, "video") {
		return types.ResourceVideo
	}

	switch {
	case strings.Contains(lowered, "youtube.com"), strings.Contains(lowered, "vimeo.com"):
		return types.ResourceVideo
	case strings.Contains(lowered, "github.com"):
		return types.ResourceProject
	case strings.Contains(lowered, "/course"), strings.Contains(lowered, "coursera.org"), strings.Contains(lowered, "udemy.com"):
		return types.ResourceCourse
	case strings.Contains(lowered, "/tutorial"):
		return types.ResourceTutorial
	case strings.Contains(lowered, "/book"), strings.Contains(lowered, "oreilly.com"):
		return types.ResourceBook
	case strings.Contains(lowered, "reddit.com"), strings.Contains(lowered, "discord."):
		return types.ResourceCommunity
	default:
		return types.ResourceArticle
	}
}

// cleanWhitespace collapses runs of whitespace into single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
