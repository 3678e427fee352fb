package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/parser"
	"github.com/custodia-labs/folio/internal/postprocessors/slugger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

const (
	// minNovelSlug is the shortest title slug used as is.
	minNovelSlug = 3

	// maxSlugVariants bounds the numbered variants tried before a
	// timestamp suffix is used.
	maxSlugVariants = 100

	// previewTitles is the number of chapter titles reported after an import.
	previewTitles = 5
)

// ImportService fetches documents, parses them and stores the result.
type ImportService struct {
	fetcher   driven.Fetcher
	store     driven.NovelStore
	pipeline  driven.ChapterPipeline
	settings  domain.ImportSettings
	extractor *parser.Extractor
	segmenter *parser.Segmenter
	token     func() string
	now       func() time.Time
}

// ImportOption configures an ImportService.
type ImportOption func(*ImportService)

// WithTokenSource sets the generator for identifiers used when neither the
// title nor the source yields a usable name.
func WithTokenSource(token func() string) ImportOption {
	return func(s *ImportService) {
		if token != nil {
			s.token = token
			s.extractor = parser.NewExtractor(parser.WithTokenSource(token))
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) ImportOption {
	return func(s *ImportService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewImportService creates a new import service.
// pipeline may be nil, in which case chapters only receive slugs.
func NewImportService(
	fetcher driven.Fetcher,
	store driven.NovelStore,
	pipeline driven.ChapterPipeline,
	settings domain.ImportSettings,
	opts ...ImportOption,
) *ImportService {
	s := &ImportService{
		fetcher:   fetcher,
		store:     store,
		pipeline:  pipeline,
		settings:  settings,
		extractor: parser.NewExtractor(),
		segmenter: parser.NewSegmenter(parser.WithTrace(logger.Debug)),
		token:     shortToken,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import fetches, parses and stores the document named by req.Source.
func (s *ImportService) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportResult, error) {
	logger.Section("Import")
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, preview.Metadata.Title, preview.Source)
	if err != nil {
		return nil, err
	}
	logger.Debug("final slug: %s", slug)

	now := s.now().UTC()
	novel := &domain.Novel{
		ID:           uuid.NewString(),
		Slug:         slug,
		Title:        preview.Metadata.Title,
		Author:       preview.Metadata.Author,
		Description:  preview.Metadata.Description,
		Status:       domain.NovelStatusCompleted,
		SourceURL:    preview.Source,
		ChapterCount: len(preview.Chapters),
		Imported:     true,
		ImportedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	chapters := make([]domain.Chapter, len(preview.Chapters))
	for i, pc := range preview.Chapters {
		chapters[i] = domain.Chapter{
			ID:        uuid.NewString(),
			NovelSlug: slug,
			Title:     pc.Title,
			Content:   pc.Content,
			Number:    pc.ChapterNumber,
			Imported:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	chapters, err = s.process(ctx, novel, chapters)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveNovel(ctx, novel); err != nil {
		return nil, fmt.Errorf("save novel: %w", err)
	}
	if err := s.store.SaveChapters(ctx, chapters); err != nil {
		if delErr := s.store.DeleteNovel(ctx, slug); delErr != nil {
			logger.Warn("cleanup after failed import of %s: %v", slug, delErr)
		}
		return nil, fmt.Errorf("save chapters: %w", err)
	}
	logger.Info("imported %q as %s with %d chapters", novel.Title, slug, len(chapters))

	titles := make([]string, 0, previewTitles)
	for _, ch := range preview.Chapters {
		if len(titles) == previewTitles {
			break
		}
		titles = append(titles, ch.Title)
	}

	return &domain.ImportResult{
		Novel:         *novel,
		ChapterCount:  len(chapters),
		ChapterTitles: titles,
		Collisions:    preview.Collisions,
	}, nil
}

// Preview fetches and parses a document without storing anything.
func (s *ImportService) Preview(ctx context.Context, req domain.ImportRequest) (*domain.ImportPreview, error) {
	source := strings.TrimSpace(req.Source)
	if err := s.checkSource(source); err != nil {
		return nil, err
	}

	done := logger.Timed("fetch " + source)
	raw, err := s.fetcher.Fetch(ctx, source)
	done()
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched %d bytes (%s)", len(raw.Text), raw.MIMEType)

	preview, err := s.Parse(ctx, raw.Text, source, req.Title)
	if err != nil {
		return nil, err
	}

	if preview.BodyLength < s.settings.MinContentLength {
		return nil, fmt.Errorf("%w: %d characters after stripping boilerplate, need %d",
			domain.ErrContentTooShort, preview.BodyLength, s.settings.MinContentLength)
	}
	return preview, nil
}

// Parse extracts metadata and chapters from text already in memory.
// A non-blank title overrides the extracted one.
func (s *ImportService) Parse(ctx context.Context, text, source, title string) (*domain.ImportPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := s.extractor.Extract(text, source)
	if override := strings.Join(strings.Fields(title), " "); override != "" {
		meta.Title = override
	}
	logger.Debug("metadata: title=%q author=%q", meta.Title, meta.Author)

	result := s.segmenter.Analyse(text, meta.Title)
	if len(result.Chapters) == 0 {
		return nil, domain.ErrNoChapters
	}
	if result.Single() {
		logger.Debug("no chapter structure found, stored as a single chapter")
	} else {
		logger.Debug("pattern %q produced %d chapters", result.Matcher, len(result.Chapters))
	}

	collisions := parser.Collisions(result.Chapters)
	if len(collisions) > 0 {
		logger.Warn("chapter numbers used more than once: %v", collisions)
	}

	return &domain.ImportPreview{
		Source:     source,
		Metadata:   meta,
		Chapters:   result.Chapters,
		Collisions: collisions,
		BodyLength: utf8.RuneCountInString(result.Cleaned),
	}, nil
}

// checkSource rejects empty sources and URLs outside the allowed hosts.
// Anything without an http or https scheme is treated as a local path.
func (s *ImportService) checkSource(source string) error {
	if source == "" {
		return fmt.Errorf("%w: source is required", domain.ErrInvalidInput)
	}
	if !strings.Contains(source, "://") {
		return nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", domain.ErrUnsupportedSource, u.Scheme)
	}
	if !HostAllowed(u.Hostname(), s.settings.AllowedHosts) {
		return fmt.Errorf("%w: host %q is not in import.allowed_hosts", domain.ErrUnsupportedSource, u.Hostname())
	}
	return nil
}

// HostAllowed reports whether host equals an allowed host or is a
// subdomain of one.
func HostAllowed(host string, allowed []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

// uniqueSlug derives a novel slug from title and makes it unique by trying
// numbered variants, then a millisecond timestamp.
func (s *ImportService) uniqueSlug(ctx context.Context, title, source string) (string, error) {
	base := slugger.Slugify(title)
	if len(base) < minNovelSlug || base == "unknown" || base == "untitled" {
		id := parser.SourceID(source)
		if id == "" {
			id = s.token()
		}
		base = "imported-novel-" + id
	}

	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		logger.Debug("slug %q already exists, trying a variant", slug)
		if counter > maxSlugVariants {
			return fmt.Sprintf("%s-%d", base, s.now().UnixMilli()), nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// process runs the configured pipeline and makes sure every chapter can be
// addressed afterwards.
func (s *ImportService) process(ctx context.Context, novel *domain.Novel, chapters []domain.Chapter) ([]domain.Chapter, error) {
	var err error
	if s.pipeline != nil {
		chapters, err = s.pipeline.Process(ctx, novel, chapters)
		if err != nil {
			return nil, fmt.Errorf("post-process chapters: %w", err)
		}
	}

	for _, ch := range chapters {
		if ch.Slug == "" {
			return slugger.New().Process(ctx, novel, chapters)
		}
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("%w: pipeline removed every chapter", domain.ErrNoChapters)
	}
	return chapters, nil
}

// shortToken returns six random hex characters.
func shortToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
