package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/namaztracker/namaz/internal/markdown"
)

const helpFile = "help.md"

type HelpPage struct {
	Title       string
	Description string
	HTML        string
	Headings    []markdown.Heading
}

// HelpService renders the help page once and serves the cached result.
type HelpService struct {
	parser      *markdown.Parser
	contentPath string

	once sync.Once
	page *HelpPage
	err  error
}

func NewHelpService(contentPath string) *HelpService {
	return &HelpService{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

func (s *HelpService) Page() (*HelpPage, error) {
	s.once.Do(func() {
		s.page, s.err = s.load()
	})
	return s.page, s.err
}

func (s *HelpService) load() (*HelpPage, error) {
	path := filepath.Join(s.contentPath, helpFile)
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read help page: %w", err)
	}

	doc, err := s.parser.ParseDocument(source)
	if err != nil {
		return nil, fmt.Errorf("failed to render help page: %w", err)
	}

	page := &HelpPage{
		Title:    "Help",
		HTML:     string(doc.HTML),
		Headings: doc.Headings,
	}
	if title, ok := doc.Meta["title"].(string); ok && title != "" {
		page.Title = title
	}
	if desc, ok := doc.Meta["description"].(string); ok {
		page.Description = desc
	}
	return page, nil
}
