package http

import (
	"strings"

	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
)

// --- Request DTOs ---

type fileReq struct {
	Name      string `json:"name"       binding:"required"`
	MIMEType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes" binding:"gte=0"`
	Data      string `json:"data"       binding:"required"`
}

type settingsReq struct {
	Provider          string `json:"provider"`
	APIKey            string `json:"api_key"`
	Model             string `json:"model"`
	BaseURL           string `json:"base_url"`
	SystemInstruction string `json:"system_instruction"`
}

type analyzeReq struct {
	Prompt   string      `json:"prompt"`
	Files    []fileReq   `json:"files"    binding:"dive"`
	Settings settingsReq `json:"settings"`
}

func (r analyzeReq) validate() error {
	if strings.TrimSpace(r.Prompt) == "" && len(r.Files) == 0 {
		return analysis.ErrEmptyRequest
	}
	return nil
}

func (r analyzeReq) toInput() analysis.AnalyzeInput {
	files := make([]llmprovider.AttachedFile, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, llmprovider.AttachedFile{
			Name:      f.Name,
			MIMEType:  f.MIMEType,
			SizeBytes: f.SizeBytes,
			Payload:   f.Data,
		})
	}
	return analysis.AnalyzeInput{
		Prompt: r.Prompt,
		Files:  files,
		Settings: llmprovider.Settings{
			Provider:          llmprovider.ProviderKind(r.Settings.Provider),
			APIKey:            r.Settings.APIKey,
			Model:             r.Settings.Model,
			BaseURL:           r.Settings.BaseURL,
			SystemInstruction: r.Settings.SystemInstruction,
		},
	}
}

// --- Response DTOs ---

type analyzeResp struct {
	RequestID  string `json:"request_id"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Text       string `json:"text"`
	Updates    int    `json:"updates"`
	DurationMS int64  `json:"duration_ms"`
}

func (h *handler) newAnalyzeResp(o analysis.AnalyzeOutput) analyzeResp {
	return analyzeResp{
		RequestID:  o.RequestID,
		Provider:   string(o.Provider),
		Model:      o.Model,
		Text:       o.Text,
		Updates:    o.Updates,
		DurationMS: o.Duration.Milliseconds(),
	}
}

type deltaEvent struct {
	Text string `json:"text"`
}

type errorEvent struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type providerResp struct {
	Name           string `json:"name"`
	DefaultModel   string `json:"default_model"`
	DefaultBaseURL string `json:"default_base_url,omitempty"`
	RequiresAPIKey bool   `json:"requires_api_key"`
	HasServerKey   bool   `json:"has_server_key"`
	Default        bool   `json:"default"`
}

type providersResp struct {
	Providers []providerResp `json:"providers"`
}

func (h *handler) newProvidersResp(infos []analysis.ProviderInfo) providersResp {
	out := providersResp{Providers: make([]providerResp, 0, len(infos))}
	for _, p := range infos {
		out.Providers = append(out.Providers, providerResp{
			Name:           string(p.Name),
			DefaultModel:   p.DefaultModel,
			DefaultBaseURL: p.DefaultBaseURL,
			RequiresAPIKey: p.RequiresAPIKey,
			HasServerKey:   p.HasServerKey,
			Default:        p.Default,
		})
	}
	return out
}
