package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"google.golang.org/genai"
)

// Model choices mirror what the web client was built against. Each endpoint
// pins its own model: the chat widget wants the strongest conversational
// model, the product-card summary wants the cheapest/fastest one.
const (
	chatModel    = "gemini-3.1-pro-preview"
	summaryModel = "gemini-2.5-flash-lite-latest"
	mapsModel    = "gemini-2.5-flash"
	imageModel   = "gemini-3-pro-image-preview"
	videoModel   = "veo-3.1-fast-generate-preview"
)

const chatSystemInstruction = "You are TechAssistant, a helpful AI support agent for TechMarket, " +
	"an electronics e-commerce store. Answer questions about tech products, specs, and general advice. " +
	"Be concise and professional."

var (
	// ErrNoImage means the model answered without an inline image part.
	ErrNoImage = errors.New("no image generated")
	// ErrVideoIncomplete means the generation operation did not finish a
	// usable video within the poll budget.
	ErrVideoIncomplete = errors.New("video generation timed out or failed")
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// ChatTurn is one prior exchange in the conversation, in the wire shape the
// client keeps its history in.
type ChatTurn struct {
	Role  string     `json:"role"` // "user" or "model"
	Parts []ChatPart `json:"parts"`
}

type ChatPart struct {
	Text string `json:"text"`
}

// Location is an optional lat/long pair used to anchor maps-grounded search.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client is a thin proxy over the hosted Gemini API. It holds no state
// beyond the SDK client and the video poll bounds; every method is one
// upstream call (the video path is one call plus a bounded poll loop).
type Client struct {
	genai           *genai.Client
	pollInterval    time.Duration
	pollMaxAttempts int
}

func NewClient(ctx context.Context, apiKey string, pollInterval time.Duration, pollMaxAttempts int) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Client{genai: c, pollInterval: pollInterval, pollMaxAttempts: pollMaxAttempts}, nil
}

// Chat continues a support conversation with the client-supplied history.
func (c *Client) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		parts := make([]*genai.Part, 0, len(turn.Parts))
		for _, p := range turn.Parts {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
		contents = append(contents, &genai.Content{Role: turn.Role, Parts: parts})
	}

	chat, err := c.genai.Chats.Create(ctx, chatModel, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatSystemInstruction, genai.RoleUser),
	}, contents)
	if err != nil {
		return "", fmt.Errorf("chat create: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("chat send: %w", err)
	}
	return resp.Text(), nil
}

// QuickSummary produces a one-sentence sales pitch for a listing.
func (c *Client) QuickSummary(ctx context.Context, title, description string) (string, error) {
	prompt := fmt.Sprintf(
		"Provide a 1-sentence punchy sales summary for this product: %s. Description: %s. Focus on the main benefit.",
		title, description)
	resp, err := c.genai.Models.GenerateContent(ctx, summaryModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("summary generate: %w", err)
	}
	return resp.Text(), nil
}

// MapsSearch answers a free-text query with the Google Maps tool enabled,
// optionally anchored to the caller's coordinates, and returns the grounding
// chunks alongside the text so the client can render source citations.
func (c *Client) MapsSearch(ctx context.Context, query string, loc *Location) (string, []*genai.GroundingChunk, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, mapsModel, genai.Text(query), mapsConfig(loc))
	if err != nil {
		return "", nil, fmt.Errorf("maps search: %w", err)
	}

	chunks := []*genai.GroundingChunk{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		chunks = resp.Candidates[0].GroundingMetadata.GroundingChunks
	}
	return resp.Text(), chunks, nil
}

// GenerateImage renders a still image for the prompt and returns the raw PNG
// bytes. size is the client's "1K"/"2K"/"4K" selector.
func (c *Client) GenerateImage(ctx context.Context, prompt, size string) ([]byte, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, imageModel, genai.Text(prompt), imageConfig(size))
	if err != nil {
		return nil, fmt.Errorf("image generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoImage
}

// mapsConfig enables the Google Maps tool, anchored to the caller's
// coordinates when they shared any. LatLng carries pointer fields.
func mapsConfig(loc *Location) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
	}
	if loc != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(loc.Latitude),
					Longitude: genai.Ptr(loc.Longitude),
				},
			},
		}
	}
	return cfg
}

// imageConfig pins square output at the requested resolution, defaulting to
// the cheapest tier.
func imageConfig(size string) *genai.GenerateContentConfig {
	if size == "" {
		size = "1K"
	}
	return &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			ImageSize:   size,
			AspectRatio: "1:1",
		},
	}
}

// GenerateVideo animates a source image into a short clip and returns the
// MP4 bytes. The generation operation is asynchronous upstream, so this
// polls at a fixed interval up to a fixed attempt ceiling and blocks the
// calling handler for the duration.
func (c *Client) GenerateVideo(ctx context.Context, imageBase64, prompt, aspectRatio string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(dataURLPrefix.ReplaceAllString(imageBase64, ""))
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}
	if prompt == "" {
		prompt = "Cinematic camera movement"
	}
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	op, err := c.genai.Models.GenerateVideos(ctx, videoModel, prompt,
		&genai.Image{ImageBytes: raw, MIMEType: "image/png"},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     "720p",
			AspectRatio:    aspectRatio,
		})
	if err != nil {
		return nil, fmt.Errorf("video generate: %w", err)
	}

	for attempts := 0; !op.Done && attempts < c.pollMaxAttempts; attempts++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
		op, err = c.genai.Operations.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return nil, fmt.Errorf("video poll: %w", err)
		}
	}

	if !op.Done || op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, ErrVideoIncomplete
	}

	video := op.Response.GeneratedVideos[0].Video
	data, err := c.genai.Files.Download(ctx, video, nil)
	if err != nil {
		return nil, fmt.Errorf("video download: %w", err)
	}
	if len(video.VideoBytes) > 0 {
		return video.VideoBytes, nil
	}
	return data, nil
}
