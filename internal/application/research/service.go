// Package research runs one research exchange: attached files, optional web
// search, inference and history.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// Service orchestrates the research lifecycle end-to-end.
type Service struct {
	Settings      ports.SettingsStore
	ClientFactory ports.InferenceClientFactory
	Extractor     ports.FileExtractor
	Searcher      ports.WebSearcher
	History       ports.HistoryRepository
	Logger        ports.Logger

	// SearchResults is the number of web results folded into the prompt.
	SearchResults int
	// ReportSearchErrors surfaces search failures as response warnings.
	ReportSearchErrors bool
	// TokenOverride replaces the stored token without persisting it.
	TokenOverride string
}

// Run processes a single research request.
func (s *Service) Run(ctx context.Context, req domain.ResearchRequest) (domain.ResearchResponse, error) {
	if s.Settings == nil || s.ClientFactory == nil || s.Extractor == nil || s.Logger == nil {
		return domain.ResearchResponse{}, errors.New("research.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := s.Settings.Load()
	if err != nil {
		return domain.ResearchResponse{}, fmt.Errorf("load settings: %w", err)
	}
	if s.TokenOverride != "" {
		settings.Token = s.TokenOverride
	}
	if !settings.HasToken() {
		return domain.ResearchResponse{}, domain.ErrMissingCredential
	}

	resp := domain.ResearchResponse{
		RunID:  uuid.NewString(),
		Model:  settings.ResolveModel(req.Model),
		Prompt: req.Prompt,
	}
	logFields := map[string]interface{}{"run_id": resp.RunID, "model": resp.Model}

	resp.Files = s.Extractor.ProcessAll(req.Files)
	var images []string
	var textFiles []domain.ProcessedFile
	for _, file := range resp.Files {
		if !file.OK() {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", file.Name, file.Err))
			continue
		}
		if file.Kind == domain.FileKindImage {
			images = append(images, file.Content)
			continue
		}
		textFiles = append(textFiles, file)
	}
	finalPrompt := domain.FormatFilesForPrompt(textFiles, req.Prompt)

	if req.WebSearch && len(images) == 0 && s.Searcher != nil {
		results := s.search(ctx, req.Prompt, &resp)
		if len(results) > 0 {
			resp.WebSearchResults = results
			finalPrompt = finalPrompt + "\n\nWeb Search Results:\n" + domain.FormatSearchResults(results)
		}
	}
	resp.FinalPrompt = finalPrompt

	client := s.ClientFactory.ForSettings(settings)
	s.Logger.Info("calling inference", mergeFields(logFields, map[string]interface{}{
		"files":       len(resp.Files),
		"images":      len(images),
		"web_results": len(resp.WebSearchResults),
	}))

	var text string
	if len(images) > 0 {
		resp.ImagePath = images[0]
		if len(images) > 1 {
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("only the first image is sent; %d ignored", len(images)-1))
		}
		text, err = client.GenerateWithImage(ctx, resp.Model, finalPrompt, resp.ImagePath, req.Params)
	} else {
		text, err = client.ChatCompletion(ctx, resp.Model, []domain.ChatMessage{
			{Role: domain.RoleUser, Content: finalPrompt},
		}, req.Params)
	}
	if err != nil {
		s.Logger.Error("research failed", err, logFields)
		return resp, err
	}
	resp.Response = text

	if req.RecordHistory && settings.FeatureEnabled(domain.FeatureHistory) && s.History != nil {
		entry, err := s.History.Add(domain.NewHistoryEntry{
			Model:            resp.Model,
			Prompt:           req.Prompt,
			Response:         text,
			Files:            append([]string{}, req.Files...),
			WebSearchResults: resp.WebSearchResults,
		})
		if err != nil {
			s.Logger.Warn("history write failed", mergeFields(logFields, map[string]interface{}{"error": err.Error()}))
			resp.Warnings = append(resp.Warnings, "history not saved: "+err.Error())
		} else {
			resp.HistoryID = entry.ID
		}
	}

	s.Logger.Info("research complete", mergeFields(logFields, map[string]interface{}{"chars": len(text)}))
	return resp, nil
}

// Dispatch runs the request on a worker goroutine. The returned channel
// delivers exactly one outcome and is then closed.
func (s *Service) Dispatch(ctx context.Context, req domain.ResearchRequest) <-chan domain.ResearchOutcome {
	done := make(chan domain.ResearchOutcome, 1)
	go func() {
		defer close(done)
		resp, err := s.Run(ctx, req)
		done <- domain.ResearchOutcome{Response: resp, Err: err}
	}()
	return done
}

func (s *Service) search(ctx context.Context, query string, resp *domain.ResearchResponse) []domain.SearchResult {
	limit := s.SearchResults
	if limit <= 0 {
		limit = domain.DefaultSearchResults
	}
	results, err := s.Searcher.Search(ctx, query, limit)
	if err != nil {
		s.Logger.Warn("web search failed", map[string]interface{}{"run_id": resp.RunID, "error": err.Error()})
		if s.ReportSearchErrors {
			resp.Warnings = append(resp.Warnings, "web search failed: "+err.Error())
		}
		return nil
	}
	return results
}

func mergeFields(base, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Chat sends explicit messages without files, search or history.
func (s *Service) Chat(ctx context.Context, model string, messages []domain.ChatMessage, params *domain.GenerationParams) (string, error) {
	settings, err := s.Settings.Load()
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	if s.TokenOverride != "" {
		settings.Token = s.TokenOverride
	}
	if len(messages) == 0 || strings.TrimSpace(messages[len(messages)-1].Content) == "" {
		return "", errors.New("at least one non-empty message is required")
	}
	return s.ClientFactory.ForSettings(settings).ChatCompletion(ctx, settings.ResolveModel(model), messages, params)
}
