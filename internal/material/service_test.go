package material

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"uleary/internal/extract"
	"uleary/internal/models"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns a canned summary and counts calls.
type fakeGenerator struct {
	calls int
	data  any
	err   error
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, text string, kind models.ProcessingType) (*models.GeneratedContent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	data := g.data
	if data == nil {
		data = map[string]any{
			"title":     "Podsumowanie",
			"summary":   "Treść podsumowania",
			"keyPoints": []string{"punkt 1"},
		}
	}
	return &models.GeneratedContent{Type: kind, Data: data, Formatted: true}, nil
}

func docxBytes(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	fmt.Fprintf(w, `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:body></w:document>`, text)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestService() (*Service, *fakeGenerator) {
	gen := &fakeGenerator{}
	return NewService(gen, nil, clockwork.NewFakeClock()), gen
}

func uploadTestMaterial(t *testing.T, s *Service) *models.Material {
	t.Helper()
	material, err := s.Upload(context.Background(), "notatki.docx", extract.MimeDOCX, docxBytes(t, "Fotosynteza zachodzi w roślinach."))
	require.NoError(t, err)
	return material
}

func TestUpload(t *testing.T) {
	s, _ := newTestService()

	material := uploadTestMaterial(t, s)
	assert.Contains(t, material.ID, "material_")
	assert.Equal(t, "notatki.docx", material.Name)
	assert.Equal(t, extract.MimeDOCX, material.MimeType)
	assert.Equal(t, 1, material.PageCount)
	assert.Equal(t, "Fotosynteza zachodzi w roślinach.", material.FullText)
	assert.False(t, material.HasSummary)
}

func TestUploadEmptyFile(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Upload(context.Background(), "plik.pdf", extract.MimePDF, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestUploadUnextractable(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Upload(context.Background(), "plik.docx", extract.MimeDOCX, []byte("not a zip"))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestList(t *testing.T) {
	s, _ := newTestService()
	assert.Empty(t, s.List())

	material := uploadTestMaterial(t, s)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, material.ID, list[0].ID)
	assert.Equal(t, material.PageCount, list[0].PageCount)
}

func TestGenerateSummary(t *testing.T) {
	s, gen := newTestService()
	material := uploadTestMaterial(t, s)

	summary, existing, err := s.GenerateSummary(context.Background(), material.ID, nil)
	require.NoError(t, err)
	assert.False(t, existing)
	assert.Contains(t, summary.ID, "summary_")
	assert.Equal(t, material.ID, summary.MaterialID)
	assert.Equal(t, "notatki.docx", summary.MaterialName)
	assert.Equal(t, "wszystkie strony", summary.PageRange)
	assert.Equal(t, "Podsumowanie", summary.Content.Title)
	assert.Equal(t, []int{}, summary.SelectedPages)
	assert.Equal(t, 1, gen.calls)
	assert.True(t, material.HasSummary)
}

func TestGenerateSummaryIsIdempotent(t *testing.T) {
	s, gen := newTestService()
	material := uploadTestMaterial(t, s)

	first, _, err := s.GenerateSummary(context.Background(), material.ID, nil)
	require.NoError(t, err)

	second, existing, err := s.GenerateSummary(context.Background(), material.ID, []int{1, 2})
	require.NoError(t, err)
	assert.True(t, existing)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateSummarySelectedPages(t *testing.T) {
	s, _ := newTestService()
	material := uploadTestMaterial(t, s)

	summary, _, err := s.GenerateSummary(context.Background(), material.ID, []int{2, 4, 7})
	require.NoError(t, err)
	assert.Equal(t, "strony: 2, 4, 7", summary.PageRange)
	assert.Equal(t, []int{2, 4, 7}, summary.SelectedPages)
}

func TestGenerateSummaryUnknownMaterial(t *testing.T) {
	s, _ := newTestService()

	_, _, err := s.GenerateSummary(context.Background(), "material_missing", nil)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestGetAndDeleteSummary(t *testing.T) {
	s, _ := newTestService()
	material := uploadTestMaterial(t, s)

	_, err := s.GetSummary(material.ID)
	assert.ErrorIs(t, err, ErrSummaryNotFound)

	created, _, err := s.GenerateSummary(context.Background(), material.ID, nil)
	require.NoError(t, err)

	got, err := s.GetSummary(material.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, s.DeleteSummary(material.ID))
	assert.False(t, material.HasSummary)

	_, err = s.GetSummary(material.ID)
	assert.ErrorIs(t, err, ErrSummaryNotFound)
	assert.ErrorIs(t, s.DeleteSummary(material.ID), ErrSummaryNotFound)
}

func TestDescribePageRange(t *testing.T) {
	assert.Equal(t, "wszystkie strony", describePageRange(nil, 3))
	assert.Equal(t, "strony: 1-5", describePageRange(nil, 6))
	assert.Equal(t, "strony: 1, 2", describePageRange([]int{1, 2}, 6))
}
