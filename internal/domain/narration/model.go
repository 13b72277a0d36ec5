package narration

import "context"

// SuccessMessage is returned once the artifact has been written.
const SuccessMessage = "TTS generated successfully!"

// Config holds runtime knobs for the narration stage.
type Config struct {
	SourceLanguage string
	TargetLanguage string
	MaxNarrated    int
}

// Response is serialized back to API consumers.
type Response struct {
	Message  string `json:"message"`
	File     string `json:"file"`
	Language string `json:"language"`
}

// Translator converts text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Synthesizer renders text as MP3 audio in the given language.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}

// ArtifactStore persists the rendered audio and returns its location.
type ArtifactStore interface {
	Write(ctx context.Context, audio []byte) (string, error)
}
