package service

import (
	"log"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer converts raw encoded image bytes into plain text. It is
// best-effort: implementations return "" for images with no recognizable
// text, and recognition failures on a single image must not abort the
// document's extraction.
type Recognizer interface {
	RecognizeImage(imageData []byte) string
	Close() error
}

// TesseractRecognizer wraps the Tesseract OCR engine via gosseract.
// Tesseract must be installed on the system (apt-get install tesseract-ocr).
type TesseractRecognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractRecognizer creates an OCR client for the given languages
// ("+"-separated, e.g. "eng+fra"). The client should be closed when no
// longer needed to release resources.
func NewTesseractRecognizer(languages string) (*TesseractRecognizer, error) {
	client := gosseract.NewClient()
	if languages != "" {
		if err := client.SetLanguage(strings.Split(languages, "+")...); err != nil {
			client.Close()
			return nil, err
		}
	}
	return &TesseractRecognizer{client: client}, nil
}

// RecognizeImage performs OCR on encoded image data (PNG, JPEG, TIFF).
// Errors degrade to an empty string: a corrupt embedded image is skipped the
// same way as a purely decorative one.
func (r *TesseractRecognizer) RecognizeImage(imageData []byte) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.SetImageFromBytes(imageData); err != nil {
		log.Printf("Warning: OCR could not read image: %v", err)
		return ""
	}
	text, err := r.client.Text()
	if err != nil {
		log.Printf("Warning: OCR failed: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// Close releases OCR resources.
func (r *TesseractRecognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
