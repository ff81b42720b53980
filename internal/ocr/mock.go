package ocr

import "context"

// MockEngine is a test double returning canned OCR output.
type MockEngine struct {
	MockText string
	MockErr  error
	Calls    []string
}

// NewMockEngine creates a MockEngine with the given canned result.
func NewMockEngine(text string, err error) *MockEngine {
	return &MockEngine{MockText: text, MockErr: err}
}

// ExtractText records the call and returns the canned result.
func (m *MockEngine) ExtractText(_ context.Context, pdfPath string) (string, error) {
	m.Calls = append(m.Calls, pdfPath)
	if m.MockErr != nil {
		return "", m.MockErr
	}
	return m.MockText, nil
}
