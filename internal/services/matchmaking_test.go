package services

import (
	"testing"
	"time"

	"github.com/studentcollab/backend/internal/models"
)

func skillSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		skills   []string
		expected int
	}{
		{"full overlap", []string{"python", "css"}, []string{"python", "css"}, 2},
		{"partial overlap", []string{"python", "css"}, []string{"python"}, 1},
		{"no overlap", []string{"java"}, []string{"python", "css"}, 0},
		{"no skills", []string{"python", "css"}, nil, 0},
		{"no requirements", nil, []string{"python"}, 0},
		{"extra user skills ignored", []string{"python"}, []string{"python", "css", "go"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchScore(skillSet(tt.required...), skillSet(tt.skills...))
			if got != tt.expected {
				t.Errorf("MatchScore() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestRankProjects_SkillOverlapOrdering(t *testing.T) {
	now := time.Now()
	projects := []models.Project{
		{ID: 1, Title: "Java Tooling", RequiredSkills: "java", CreatedAt: now},
		{ID: 2, Title: "Web Portfolio", RequiredSkills: "python,css", CreatedAt: now.Add(-time.Hour)},
	}

	// User B has both required skills of project 2
	ranked := RankProjects(projects, skillSet("python", "css"))

	if ranked[0].ID != 2 {
		t.Errorf("project with higher overlap should rank first, got project %d", ranked[0].ID)
	}
	if ranked[0].MatchCount != 2 {
		t.Errorf("expected match count 2, got %d", ranked[0].MatchCount)
	}
	if ranked[1].MatchCount != 0 {
		t.Errorf("expected match count 0 for java project, got %d", ranked[1].MatchCount)
	}
}

func TestRankProjects_TieBreaksByNewest(t *testing.T) {
	now := time.Now()
	projects := []models.Project{
		{ID: 1, RequiredSkills: "python", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, RequiredSkills: "python", CreatedAt: now},
		{ID: 3, RequiredSkills: "python", CreatedAt: now.Add(-time.Hour)},
	}

	ranked := RankProjects(projects, skillSet("python"))

	expected := []uint{2, 3, 1}
	for i, id := range expected {
		if ranked[i].ID != id {
			t.Errorf("position %d: expected project %d, got %d", i, id, ranked[i].ID)
		}
	}
}

func TestRankProjects_NoSkillsKeepsDefaultOrder(t *testing.T) {
	// Input arrives newest-first from the query; a user with no skill tags
	// (or an anonymous visitor) must see exactly that order.
	now := time.Now()
	projects := []models.Project{
		{ID: 3, RequiredSkills: "python,css", CreatedAt: now},
		{ID: 2, RequiredSkills: "java", CreatedAt: now.Add(-time.Hour)},
		{ID: 1, RequiredSkills: "go", CreatedAt: now.Add(-2 * time.Hour)},
	}

	ranked := RankProjects(projects, nil)

	for i, expected := range []uint{3, 2, 1} {
		if ranked[i].ID != expected {
			t.Errorf("position %d: expected project %d, got %d", i, expected, ranked[i].ID)
		}
		if ranked[i].MatchCount != 0 {
			t.Errorf("anonymous ranking should carry zero scores, got %d", ranked[i].MatchCount)
		}
	}
}

func TestRankProjects_Deterministic(t *testing.T) {
	now := time.Now()
	projects := []models.Project{
		{ID: 1, RequiredSkills: "python,css", CreatedAt: now.Add(-time.Minute)},
		{ID: 2, RequiredSkills: "python", CreatedAt: now},
		{ID: 3, RequiredSkills: "css,python", CreatedAt: now.Add(-2 * time.Minute)},
	}
	skills := skillSet("python", "css")

	first := RankProjects(projects, skills)
	for run := 0; run < 10; run++ {
		again := RankProjects(projects, skills)
		for i := range first {
			if first[i].ID != again[i].ID {
				t.Fatalf("run %d: ranking not deterministic at position %d", run, i)
			}
		}
	}
}
