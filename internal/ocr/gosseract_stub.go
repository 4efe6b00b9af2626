//go:build !gosseract

package ocr

import "errors"

// ErrGosseractDisabled is returned when the binary was built without the gosseract tag.
var ErrGosseractDisabled = errors.New("gosseract recognizer not enabled: rebuild with -tags gosseract")

// NewGosseractRecognizer is unavailable without the gosseract build tag.
func NewGosseractRecognizer(Config) (Recognizer, error) {
	return nil, ErrGosseractDisabled
}
