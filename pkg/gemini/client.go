// Package gemini is a thin REST client for the Generative Language API used
// as the recognition gateway: visual-signature enrollment, face
// identification against the roster, and liveness verification.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	// Pro handles the high-precision enrollment task, Flash the real-time
	// gate calls.
	enrollModel = "gemini-3-pro-preview"
	gateModel   = "gemini-3-flash-preview"
)

// RosterEntry is the minimal employee view the identification prompt needs.
type RosterEntry struct {
	ID              string
	Name            string
	VisualSignature string
}

// RecognitionResult is the identification decision for a single frame.
type RecognitionResult struct {
	Matched    bool    `json:"matched"`
	EmployeeID string  `json:"employeeId"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// LivenessResult is the anti-spoofing decision over a frame burst.
type LivenessResult struct {
	IsLive     bool    `json:"isLive"`
	Confidence float64 `json:"confidence"`
}

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}

	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// request/response shapes of the generateContent endpoint

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type,omitempty"`
	ResponseSchema   json.RawMessage `json:"response_schema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// framePart strips an optional data-URL prefix and wraps the base64 payload.
func framePart(frame string) part {
	if idx := strings.IndexByte(frame, ','); idx >= 0 {
		frame = frame[idx+1:]
	}
	return part{InlineData: &inlineData{MimeType: "image/jpeg", Data: frame}}
}

func (c *Client) generate(ctx context.Context, model string, req *generateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("recognition service returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from recognition service")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateVisualSignature extracts a permanent facial-structure text vector
// from the enrollment photos.
func (c *Client) GenerateVisualSignature(ctx context.Context, images []string) (string, error) {
	parts := make([]part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, framePart(img))
	}
	parts = append(parts, part{Text: `You are a biometric expert for a campus security system.
Analyze these enrollment photos for an identity registry.
Generate a technical "Visual Signature" (text vector) describing this member's permanent facial structure.
Focus on:
- Skeletal structure (brow ridge, jawline, cheekbones)
- Eye characteristics (inter-pupillary distance, fold type)
- Nose geometry (bridge width, tip shape)
- Permanent identifying marks.

The signature will be used to authorize entry under varied lighting and angles.
BE CONCISE, TECHNICAL, AND STRUCTURED.`})

	return c.generate(ctx, enrollModel, &generateRequest{
		Contents: []content{{Parts: parts}},
	})
}

var recognitionSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "matched": {"type": "BOOLEAN"},
    "employeeId": {"type": "STRING"},
    "confidence": {"type": "NUMBER"},
    "message": {"type": "STRING"}
  },
  "required": ["matched", "confidence"]
}`)

// IdentifyFace compares a live frame against the enrolled roster.
func (c *Client) IdentifyFace(ctx context.Context, frame string, roster []RosterEntry) (*RecognitionResult, error) {
	if len(roster) == 0 {
		return &RecognitionResult{Matched: false, Confidence: 0}, nil
	}

	var registry strings.Builder
	for _, m := range roster {
		fmt.Fprintf(&registry, "[REGISTRY_ID: %s, NAME: %s] BIO_VECTOR: %s\n", m.ID, m.Name, m.VisualSignature)
	}

	prompt := fmt.Sprintf(`Gate logic:
Compare the person in the live feed against these enrolled profiles:
%s
Perform a high-confidence match. Output ONLY a JSON object:
{
  "matched": boolean,
  "employeeId": string | null,
  "confidence": number (0-1),
  "message": "Identification rationale"
}`, registry.String())

	text, err := c.generate(ctx, gateModel, &generateRequest{
		Contents: []content{{Parts: []part{framePart(frame), {Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   recognitionSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var result RecognitionResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("malformed recognition response: %w", err)
	}

	return &result, nil
}

var livenessSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "isLive": {"type": "BOOLEAN"},
    "confidence": {"type": "NUMBER"}
  },
  "required": ["isLive", "confidence"]
}`)

// VerifyLiveness runs the anti-spoofing temporal analysis over a frame burst.
func (c *Client) VerifyLiveness(ctx context.Context, frames []string) (*LivenessResult, error) {
	parts := make([]part, 0, len(frames)+1)
	for _, f := range frames {
		parts = append(parts, framePart(f))
	}
	parts = append(parts, part{Text: `Gate security protocol: anti-spoofing analysis.
Analyze these frames for signs of printed photos, digital screens, or lack of physiological movement.

Output JSON: { "isLive": boolean, "confidence": number }`})

	text, err := c.generate(ctx, gateModel, &generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   livenessSchema,
		},
	})
	if err != nil {
		return nil, err
	}

	var result LivenessResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("malformed liveness response: %w", err)
	}

	return &result, nil
}
