// Package advisor wraps the Gemini model behind the three operations
// the pages need: identify a character from an image, narrate a
// character profile, and generate content recommendations.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"itooklib/pkg/models"
)

// Sentinel answers. The pages display these verbatim.
const (
	NotConfigured = "ERROR: Key chưa được cấu hình."
	Unknown       = "Unknown"

	badRecordAnswer = "Lỗi Dữ liệu: Jikan không trả về hồ sơ hợp lệ cho nhân vật này. Vui lòng thử tên khác."
)

// Advisor holds one model handle for the process lifetime. A zero key
// leaves the client nil and every operation degrades to its
// not-configured answer without touching the network.
type Advisor struct {
	client      *genai.Client
	visionModel string
	textModel   string
}

func New(ctx context.Context, apiKey, visionModel, textModel string) *Advisor {
	a := &Advisor{visionModel: visionModel, textModel: textModel}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		log.Printf("advisor: no Gemini API key, AI features disabled")
		return a
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		log.Printf("advisor: create genai client: %v", err)
		return a
	}
	a.client = client
	return a
}

func (a *Advisor) Configured() bool {
	return a != nil && a.client != nil
}

// IdentifyCharacter sends the image to the vision model and returns
// the detected canonical name. Any model failure collapses to
// "Unknown" so the upload page stays single-branched.
func (a *Advisor) IdentifyCharacter(ctx context.Context, imageData []byte, mimeType string) string {
	if !a.Configured() {
		return NotConfigured
	}

	parts := []*genai.Part{
		genai.NewPartFromText(identifyPrompt),
		genai.NewPartFromBytes(imageData, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := a.client.Models.GenerateContent(ctx, a.visionModel, contents, nil)
	if err != nil {
		log.Printf("advisor: identify: %v", err)
		return Unknown
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return Unknown
	}
	return text
}

// AnalyzeProfile writes the otaku-style analysis report for a
// character. A nil or nameless record short-circuits to a fixed data
// error; model failures come back as an apology string carrying the
// error, which the page does display.
func (a *Advisor) AnalyzeProfile(ctx context.Context, char *models.Character) string {
	if !a.Configured() {
		return NotConfigured
	}
	if char == nil || char.Name == "" {
		return badRecordAnswer
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.textModel, genai.Text(profilePrompt(char)), nil)
	if err != nil {
		return fmt.Sprintf("Xin lỗi, AI đang bị lỗi kết nối/timeout: %v", err)
	}
	return responseText(resp)
}

// Recommend asks the text model for exactly 5 suggestions as a strict
// JSON array, then pulls the array out of whatever prose surrounds it.
// Returns nil when the model fails or the payload cannot be parsed.
func (a *Advisor) Recommend(ctx context.Context, profile models.RecommendationProfile) []models.Recommendation {
	if !a.Configured() {
		log.Printf("advisor: recommend skipped, not configured")
		return nil
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.textModel, genai.Text(recommendPrompt(profile)), nil)
	if err != nil {
		log.Printf("advisor: recommend: %v", err)
		return nil
	}

	raw, ok := ExtractJSONArray(responseText(resp))
	if !ok {
		log.Printf("advisor: recommend: no JSON array in response")
		return nil
	}

	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		log.Printf("advisor: recommend: parse: %v", err)
		return nil
	}
	return recs
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
