package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/studentcollab/backend/internal/config"
	"github.com/studentcollab/backend/internal/models"
	"github.com/studentcollab/backend/pkg/logger"
	"github.com/studentcollab/backend/pkg/response"
	"gorm.io/gorm"
)

type AIService struct {
	db     *gorm.DB
	hub    *BoardHub
	client *http.Client
}

func NewAIService(db *gorm.DB) *AIService {
	timeout := 60 * time.Second
	if config.GlobalConfig != nil && config.GlobalConfig.Gemini.TimeoutSeconds > 0 {
		timeout = time.Duration(config.GlobalConfig.Gemini.TimeoutSeconds) * time.Second
	}
	return &AIService{
		db:     db,
		hub:    GetBoardHub(),
		client: &http.Client{Timeout: timeout},
	}
}

// GeneratedTask is one suggestion parsed out of the model's reply.
type GeneratedTask struct {
	Title string `json:"title"`
	Guide string `json:"guide"`
}

// Request/response shapes for the generateContent endpoint.

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateTasks asks the configured model for a task breakdown of the project
// and inserts the suggestions as fresh TODO tasks. Owner only; insertion is
// all-or-nothing.
func (s *AIService) GenerateTasks(ctx context.Context, projectID, userID uint) ([]models.Task, error) {
	project, err := findProject(s.db, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, response.NewForbidden("only the project owner can generate tasks")
	}
	if project.GeminiAPIKey == "" {
		return nil, response.NewBadRequest("this project has no API key configured")
	}

	prompt := buildTaskPrompt(project)
	raw, err := s.callModel(ctx, project.GeminiAPIKey, prompt)
	if err != nil {
		return nil, err
	}

	suggestions, err := ParseGeneratedTasks(raw)
	if err != nil {
		logger.Error().Err(err).Uint("project_id", projectID).Msg("unusable model reply")
		LogError("ai", "parse", "model reply could not be parsed", &userID, "",
			map[string]uint{"project_id": projectID})
		return nil, response.NewBadGateway("the AI service returned an unusable response")
	}

	tasks := make([]models.Task, 0, len(suggestions))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, sg := range suggestions {
			task := models.Task{
				ProjectID:   projectID,
				Title:       sg.Title,
				Description: sg.Guide,
				Status:      models.TaskStatusTodo,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	LogInfo("ai", "generate", fmt.Sprintf("%d tasks generated", len(tasks)), &userID, "",
		map[string]uint{"project_id": projectID})
	s.hub.Publish(BoardEvent{ProjectID: projectID, Action: "generated", Count: len(tasks)})
	return tasks, nil
}

func buildTaskPrompt(project *models.Project) string {
	var b strings.Builder
	b.WriteString("You are helping a student team plan their project.\n")
	b.WriteString("Project title: " + project.Title + "\n")
	if project.Description != "" {
		b.WriteString("Project description: " + project.Description + "\n")
	}
	b.WriteString("Break this project down into 5 to 7 concrete development tasks.\n")
	b.WriteString(`Respond with ONLY a JSON array, no prose, where each element is an object with "title" (a short task name) and "guide" (two or three sentences explaining how to approach it).`)
	return b.String()
}

// callModel posts the prompt to the generateContent endpoint and returns the
// model's raw text reply.
func (s *AIService) callModel(ctx context.Context, apiKey, prompt string) (string, error) {
	cfg := config.GlobalConfig.Gemini
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		cfg.BaseURL, cfg.Model, url.QueryEscape(apiKey))

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("generateContent request failed")
		LogError("ai", "transport", "generateContent request failed: "+err.Error(), nil, "", nil)
		return "", response.NewBadGateway("the AI service could not be reached")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		LogError("ai", "transport", "generateContent response read failed: "+err.Error(), nil, "", nil)
		return "", response.NewBadGateway("the AI service could not be reached")
	}

	if resp.StatusCode != http.StatusOK {
		// The upstream body never reaches the client (it may mention the key),
		// but operators need it to diagnose rejections.
		snippet := LogSnippet(data)
		logger.Error().Int("status", resp.StatusCode).Str("body", snippet).Msg("generateContent rejected the request")
		LogError("ai", "rejected", fmt.Sprintf("generateContent returned %d", resp.StatusCode), nil, "",
			map[string]string{"body": snippet})
		return "", response.NewBadGateway("the AI service rejected the request")
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", response.NewBadGateway("the AI service returned an unusable response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", response.NewBadGateway("the AI service returned an unusable response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// ParseGeneratedTasks turns the model's text reply into task suggestions.
// Models tend to wrap JSON in markdown fences despite instructions, so those
// are stripped first.
func ParseGeneratedTasks(raw string) ([]GeneratedTask, error) {
	text := StripCodeFences(raw)

	var suggestions []GeneratedTask
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("model reply contained no tasks")
	}
	for i, sg := range suggestions {
		if strings.TrimSpace(sg.Title) == "" {
			return nil, fmt.Errorf("task %d has an empty title", i)
		}
		if strings.TrimSpace(sg.Guide) == "" {
			return nil, fmt.Errorf("task %d has an empty guide", i)
		}
	}
	return suggestions, nil
}

// logSnippetLen caps how much of an upstream body lands in the logs.
const logSnippetLen = 512

// LogSnippet trims an upstream response body down to a diagnostic snippet.
func LogSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > logSnippetLen {
		return s[:logSnippetLen] + "..."
	}
	return s
}

// StripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, leaving plain text untouched.
func StripCodeFences(s string) string {
	text := strings.TrimSpace(s)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := strings.TrimSpace(text[:idx])
		// A bare language tag on the fence line, e.g. ```json
		if first == "" || !strings.ContainsAny(first, "[{") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
