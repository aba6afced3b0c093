// Package material manages uploaded study materials and their summaries.
// Materials live in memory for the process lifetime; the raw file bytes are
// additionally pushed to object storage when R2 is configured.
package material

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"uleary/internal/extract"
	"uleary/internal/models"
	"uleary/internal/r2"
	"uleary/internal/store"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Sentinel errors surfaced to the API layer. Messages are user-facing.
var (
	ErrEmptyFile        = errors.New("brak pliku do wgrania")
	ErrNoText           = errors.New("nie udało się wyodrębnić tekstu z pliku")
	ErrMaterialNotFound = errors.New("materiał nie został znaleziony")
	ErrSummaryNotFound  = errors.New("podsumowanie nie zostało znalezione")
)

// ContentGenerator produces structured study content from source text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, text string, kind models.ProcessingType) (*models.GeneratedContent, error)
}

// Service owns the material and summary stores. The summaries store is keyed
// by material id: one summary per material.
type Service struct {
	generator ContentGenerator
	uploader  *r2.Client
	clock     clockwork.Clock

	mu        sync.Mutex
	materials *store.Store[*models.Material]
	summaries *store.Store[*models.Summary]
}

// NewService creates a material service. uploader may be nil, in which case
// object storage uploads are skipped.
func NewService(generator ContentGenerator, uploader *r2.Client, clock clockwork.Clock) *Service {
	return &Service{
		generator: generator,
		uploader:  uploader,
		clock:     clock,
		materials: store.New[*models.Material](clock),
		summaries: store.New[*models.Summary](clock),
	}
}

// Upload extracts text from an uploaded document, stores the material and
// kicks off a best-effort object storage upload in the background.
func (s *Service) Upload(ctx context.Context, filename, mimeType string, data []byte) (*models.Material, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	text, err := extract.Text(mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoText, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	material := &models.Material{
		ID:         "material_" + uuid.NewString(),
		Name:       filename,
		MimeType:   mimeType,
		Size:       int64(len(data)),
		UploadDate: s.clock.Now(),
		PageCount:  extract.EstimatePageCount(mimeType, text),
		FullText:   text,
	}
	s.materials.Put(material.ID, material)
	log.Printf("INFO: Uploaded material %s (%s, %d pages)", material.ID, filename, material.PageCount)

	if s.uploader != nil {
		go s.uploadToStorage(material.ID, filename, data)
	}

	return material, nil
}

// uploadToStorage pushes the raw file to R2 and records the public URL on the
// material. Failures are logged and otherwise ignored.
func (s *Service) uploadToStorage(materialID, filename string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := s.uploader.UploadMaterial(ctx, materialID, filename, data)
	if err != nil {
		log.Printf("WARN: R2 upload failed for material %s: %v", materialID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if material, ok := s.materials.Get(materialID); ok {
		material.URL = url
	}
}

// List returns all materials as list projections, oldest first.
func (s *Service) List() []models.MaterialInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	materials := s.materials.Values()
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].UploadDate.Before(materials[j].UploadDate)
	})

	infos := make([]models.MaterialInfo, 0, len(materials))
	for _, m := range materials {
		infos = append(infos, m.Info())
	}
	return infos
}

// GenerateSummary creates a summary for the material, or returns the existing
// one. The second return value reports whether the summary already existed.
func (s *Service) GenerateSummary(ctx context.Context, materialID string, selectedPages []int) (*models.Summary, bool, error) {
	s.mu.Lock()
	material, ok := s.materials.Get(materialID)
	if !ok {
		s.mu.Unlock()
		return nil, false, ErrMaterialNotFound
	}
	if existing, ok := s.summaries.Get(materialID); ok {
		s.mu.Unlock()
		return existing, true, nil
	}
	text := material.FullText
	pageRange := describePageRange(selectedPages, material.PageCount)
	s.mu.Unlock()

	log.Printf("INFO: Generating summary for material: %s", material.Name)
	result, err := s.generator.GenerateContent(ctx, text, models.ProcessingSummary)
	if err != nil {
		return nil, false, fmt.Errorf("nie udało się wygenerować podsumowania: %w", err)
	}

	var content models.SummaryContent
	if err := models.Remarshal(result.Data, &content); err != nil {
		return nil, false, fmt.Errorf("nie udało się wygenerować podsumowania: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// a concurrent request may have won the race
	if existing, ok := s.summaries.Get(materialID); ok {
		return existing, true, nil
	}

	if selectedPages == nil {
		selectedPages = []int{}
	}
	summary := &models.Summary{
		ID:            "summary_" + uuid.NewString(),
		MaterialID:    materialID,
		MaterialName:  material.Name,
		PageRange:     pageRange,
		Content:       content,
		CreatedDate:   s.clock.Now(),
		SelectedPages: selectedPages,
	}
	s.summaries.Put(materialID, summary)
	material.HasSummary = true

	return summary, false, nil
}

// GetSummary returns the summary for a material.
func (s *Service) GetSummary(materialID string) (*models.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, ok := s.summaries.Get(materialID)
	if !ok {
		return nil, ErrSummaryNotFound
	}
	return summary, nil
}

// DeleteSummary removes the summary for a material and clears the material's
// summary flag.
func (s *Service) DeleteSummary(materialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.summaries.Delete(materialID) {
		return ErrSummaryNotFound
	}
	if material, ok := s.materials.Get(materialID); ok {
		material.HasSummary = false
	}
	return nil
}

// describePageRange renders the page selection for display. Without an
// explicit selection, materials longer than 5 pages get the first five pages
// auto-selected.
func describePageRange(selectedPages []int, pageCount int) string {
	if len(selectedPages) > 0 {
		parts := make([]string, len(selectedPages))
		for i, p := range selectedPages {
			parts[i] = fmt.Sprint(p)
		}
		return "strony: " + strings.Join(parts, ", ")
	}
	if pageCount > 5 {
		return "strony: 1-5"
	}
	return "wszystkie strony"
}
