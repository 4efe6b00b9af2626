package constants

// OCR defaults shared by config loading and the extractor.
const (
	DefaultLang = "eng+kor"
	DefaultDPI  = 300
	// DefaultPSM is tesseract's "single column of text of variable sizes".
	DefaultPSM = 4

	DefaultDocAILocation = "us"
	DefaultMIMEType      = "application/pdf"

	EngineLocal = "local"
	EngineDocAI = "docai"
)
