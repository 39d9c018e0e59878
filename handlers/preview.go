package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"polyglot-blog-be/content"
	"polyglot-blog-be/metrics"
	"polyglot-blog-be/utils"
)

// PreviewRequest carries raw editor HTML
type PreviewRequest struct {
	HTML string `json:"html"`
}

// PreviewResponse is exactly what readers would be served for the input
type PreviewResponse struct {
	HTML      string `json:"html"`
	Truncated bool   `json:"truncated"`
}

// Preview runs editor HTML through the display pipeline without storing it
func Preview(w http.ResponseWriter, r *http.Request) {
	// Leave room for JSON escaping of a maximum size document
	r.Body = http.MaxBytesReader(w, r.Body, 2*content.MaxInputBytes)

	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Preview payload too large", nil)
			return
		}
		utils.RespondBadRequest(w, "Invalid request payload")
		return
	}

	rendered := content.Render(preview(req.HTML), content.DefaultLocale)
	metrics.PreviewTotal.Inc()

	utils.RespondSuccess(w, http.StatusOK, PreviewResponse{
		HTML:      rendered.HTML,
		Truncated: rendered.Truncated,
	}, nil)
}

// preview adapts a single draft block to content.Localized
type preview string

func (p preview) LocalizedContent(l content.Locale) string {
	if l == content.DefaultLocale {
		return string(p)
	}
	return ""
}
