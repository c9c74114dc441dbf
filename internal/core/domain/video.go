package domain

// VideoRequest asks for a preview render of a scene.
type VideoRequest struct {
	SceneID string
	Prompt  string
}

// RenderMetadata describes a finished preview render.
type RenderMetadata struct {
	RenderTime string `json:"renderTime"`
	FrameRate  int    `json:"frameRate"`
	Resolution string `json:"resolution"`
}

// VideoRender is the result of a preview render.
type VideoRender struct {
	VideoURL string         `json:"videoUrl"`
	Metadata RenderMetadata `json:"metadata"`
}
