package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"

	"github.com/docmind-ai/multirag-be/types"
)

// pageSource is the extraction boundary to the PDF library. Page numbers are
// 1-based. Implementations are owned by one extraction run and closed by it.
type pageSource interface {
	PageCount() (int, error)
	PageText(page int) (string, error)
	PageTables(page int) ([]string, error)
	PageImages(page int) ([][]byte, error)
	Close() error
}

// ExtractService decomposes a PDF into content units from three independent
// sources: the text layer, geometric table detection, and OCR over embedded
// images. Units within a page are ordered text, then tables, then images;
// pages are ascending.
type ExtractService struct {
	recognizer Recognizer
	openSource func(path string) (pageSource, error)
}

// NewExtractService creates an extract service backed by the tabula PDF
// reader and the given image-text recognizer.
func NewExtractService(recognizer Recognizer) *ExtractService {
	return &ExtractService{
		recognizer: recognizer,
		openSource: openTabulaSource,
	}
}

// ExtractUnits reads one PDF and returns its normalized unit stream plus the
// page count. A document that cannot be opened fails the whole call; a single
// page's table or image trouble is logged and skipped so the rest of the
// document still yields units.
func (s *ExtractService) ExtractUnits(filePath string) ([]types.ContentUnit, int, error) {
	src, err := s.openSource(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer src.Close()

	totalPages, err := src.PageCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read page count: %w", err)
	}

	var units []types.ContentUnit
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		units = append(units, s.extractPage(src, pageNum)...)
	}
	return units, totalPages, nil
}

// extractPage collects the units of a single page. Failures here never
// propagate; they cost at most this page's artifacts.
func (s *ExtractService) extractPage(src pageSource, pageNum int) []types.ContentUnit {
	var units []types.ContentUnit

	// Text layer: one unit per page, skipped when the page has no visible text.
	text, err := src.PageText(pageNum)
	if err != nil {
		log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
	} else if strings.TrimSpace(text) != "" {
		units = append(units, types.ContentUnit{
			Content: text,
			Page:    pageNum,
			Kind:    types.UnitKindText,
		})
	}

	// Tables: detection re-scans page geometry independently of the text layer.
	tbls, err := src.PageTables(pageNum)
	if err != nil {
		log.Printf("Warning: failed to detect tables on page %d: %v", pageNum, err)
	} else {
		for i, tableText := range tbls {
			units = append(units, types.ContentUnit{
				Content:   tableText,
				Page:      pageNum,
				Kind:      types.UnitKindTable,
				Reference: fmt.Sprintf("Table %d", i+1),
			})
		}
	}

	// Images: OCR each embedded raster image; images with no recognizable
	// text are dropped silently so decorative artwork never reaches the index.
	images, err := src.PageImages(pageNum)
	if err != nil {
		log.Printf("Warning: failed to extract images from page %d: %v", pageNum, err)
		return units
	}
	for i, imageData := range images {
		// A nil entry is an image that could not be decoded; it keeps its
		// slot so later images keep their numbering.
		if imageData == nil {
			continue
		}
		ocrText := s.recognizer.RecognizeImage(imageData)
		if strings.TrimSpace(ocrText) == "" {
			continue
		}
		units = append(units, types.ContentUnit{
			Content:   ocrText,
			Page:      pageNum,
			Kind:      types.UnitKindImage,
			Reference: fmt.Sprintf("Image %d", i+1),
		})
	}
	return units
}

// tabulaSource adapts the tabula reader to the pageSource boundary.
type tabulaSource struct {
	r        *reader.Reader
	detector *tables.GeometricDetector
}

func openTabulaSource(path string) (pageSource, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	return &tabulaSource{
		r:        r,
		detector: tables.NewGeometricDetector(),
	}, nil
}

func (t *tabulaSource) PageCount() (int, error) {
	return t.r.PageCount()
}

// PageText extracts the page's text layer with paragraph joining, so
// paragraphs come out separated by blank lines the way the chunker expects.
func (t *tabulaSource) PageText(page int) (string, error) {
	text, _, err := tabula.FromReader(t.r).Pages(page).JoinParagraphs().Text()
	return text, err
}

func (t *tabulaSource) PageTables(page int) ([]string, error) {
	p, err := t.r.GetPage(page - 1)
	if err != nil {
		return nil, err
	}
	fragments, err := t.r.ExtractTextFragments(p)
	if err != nil {
		return nil, err
	}
	width, _ := p.Width()
	height, _ := p.Height()

	modelPage := model.NewPage(width, height)
	modelPage.Number = page
	for _, f := range fragments {
		modelPage.RawText = append(modelPage.RawText, model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}

	detected, err := t.detector.Detect(modelPage)
	if err != nil {
		return nil, err
	}
	rendered := make([]string, 0, len(detected))
	for _, tbl := range detected {
		rendered = append(rendered, strings.TrimSpace(tbl.GetText()))
	}
	return rendered, nil
}

func (t *tabulaSource) PageImages(page int) ([][]byte, error) {
	p, err := t.r.GetPage(page - 1)
	if err != nil {
		return nil, err
	}
	images, err := t.r.ExtractPageImages(p)
	if err != nil {
		return nil, err
	}
	encoded := make([][]byte, 0, len(images))
	for _, img := range images {
		data, err := img.ToPNG()
		if err != nil {
			log.Printf("Warning: could not decode image %s on page %d: %v", img.Name, page, err)
			// Keep the slot so the page's image numbering stays stable.
			encoded = append(encoded, nil)
			continue
		}
		encoded = append(encoded, data)
	}
	return encoded, nil
}

func (t *tabulaSource) Close() error {
	return t.r.Close()
}
