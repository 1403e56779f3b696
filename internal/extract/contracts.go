package extract

import "context"

// TextRecognizer is the external image -> raw text collaborator. The core
// pipeline never touches image bytes itself; tests inject synthetic
// recognized text through this seam.
type TextRecognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}
