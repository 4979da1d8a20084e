package models

// Generation modes
const (
	ModeText  = "text"
	ModeImage = "image"
)

// GenerationRequest is an ephemeral text/image-to-video request. Notify asks for
// a "video ready" email; NotifyEmail is never bound from the body and is filled
// from the signed-in user.
type GenerationRequest struct {
	Mode        string `json:"mode"`
	Prompt      string `json:"prompt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Notify      bool   `json:"notify,omitempty"`
	NotifyEmail string `json:"-"`
}

// GenerationMetadata describes which model produced a video and how long it took
type GenerationMetadata struct {
	Model                 string `json:"model"`
	Provider              string `json:"provider"`
	GenerationTimeSeconds int    `json:"generationTimeSeconds"`
}

// GenerationResult is returned to the browser. A successful result always has a VideoURL.
type GenerationResult struct {
	Success  bool                `json:"success"`
	VideoURL string              `json:"videoUrl,omitempty"`
	Error    string              `json:"error,omitempty"`
	Metadata *GenerationMetadata `json:"metadata,omitempty"`
}
