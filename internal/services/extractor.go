package services

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// ExtractorService turns HTML pages into plain text for document extraction
type ExtractorService struct {
	logger *logrus.Logger
}

// NewExtractorService creates a new extractor service
func NewExtractorService(logger *logrus.Logger) *ExtractorService {
	return &ExtractorService{
		logger: logger,
	}
}

// TextFromHTML returns the visible text of doc with one space between text
// nodes, so values in adjacent cells never merge into a single number.
func (e *ExtractorService) TextFromHTML(doc string) (string, error) {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	parsed.Find("script, style, noscript, template").Remove()

	var parts []string
	for _, node := range parsed.Nodes {
		collectText(node, &parts)
	}

	text := strings.Join(parts, " ")
	e.logger.WithFields(logrus.Fields{
		"html_bytes": len(doc),
		"text_bytes": len(text),
	}).Debug("HTML converted to text")

	return text, nil
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// Health returns extractor service health status
func (e *ExtractorService) Health() map[string]interface{} {
	return map[string]interface{}{
		"status": "healthy",
	}
}
