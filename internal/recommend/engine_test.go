package recommend

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/mora/internal/models"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// sqlCorpus: terms sql, intro, data, quantum.
func sqlCorpus(t *testing.T) *CorpusIndex {
	t.Helper()
	courses := []models.Course{
		{CourseID: 1, CourseName: "Intro to SQL", LevelName: "beginner", TutorialList: `['Apa itu SQL', 'SELECT', 'WHERE', 'JOIN']`},
		{CourseID: 2, CourseName: "Advanced SQL Tuning", LevelName: "advanced", TutorialList: `["Indexes"]`},
		{CourseID: 3, CourseName: "SQL for Data", LevelName: "Pemula", TutorialList: `not a list`},
		{CourseID: 4, CourseName: "Quantum Basics", LevelName: "beginner", TutorialList: `[]`},
	}
	rows := []Vector{
		dense(0.8, 0.6, 0, 0),
		dense(0.9, 0, math.Sqrt(1-0.81), 0),
		dense(0.5, 0, math.Sqrt(0.75), 0),
		dense(0, 0, 0.999, 0.05),
	}
	return newTestIndex(t, []string{"sql", "intro", "data", "quantum"}, courses, rows)
}

func TestEngine_ScenarioA_LevelCeiling(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	idx := sqlCorpus(t)

	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{{SkillName: "SQL", TargetLevel: "Pemula"}},
	}, idx)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	first := got[0]
	if first.CourseToTake != "Intro to SQL" || first.MatchScore != 80.0 || first.Badge != models.BadgeTargetMatch {
		t.Errorf("first = %+v, want Intro to SQL / 80.0 / Target Match", first)
	}
	for _, it := range got {
		if it.CourseID == 2 {
			t.Error("advanced course recommended for a beginner target")
		}
	}
	if !reflect.DeepEqual(first.Chapters, []string{"Apa itu SQL", "SELECT", "WHERE"}) {
		t.Errorf("chapters = %q, want first three", first.Chapters)
	}
	if first.Skill != "SQL" || first.CurrentLevel != "Pemula" {
		t.Errorf("skill/level = %q/%q, want SQL/Pemula", first.Skill, first.CurrentLevel)
	}
}

func TestEngine_BlankGapSkippedOthersKept(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	idx := sqlCorpus(t)

	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{
			{SkillName: "", TargetLevel: "Beginner"},
			{SkillName: "   ", TargetLevel: "Advanced"},
			{SkillName: "SQL", TargetLevel: "Pemula"},
		},
	}, idx)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	for _, it := range got {
		if it.Skill != "SQL" {
			t.Errorf("item for skill %q, want only SQL", it.Skill)
		}
	}
}

func TestEngine_ScenarioB_NoOverlap(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	idx := sqlCorpus(t)

	tests := []struct {
		name  string
		skill string
	}{
		{name: "out of vocabulary", skill: "Teleportation Theory"},
		// "quantum" exists but the only course carrying it scores 0.05
		{name: "below similarity floor", skill: "Quantum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Recommend(models.UserProfile{
				MissingSkills: []models.SkillGap{{SkillName: tt.skill, TargetLevel: "Mahir"}},
			}, idx)
			if got == nil || len(got) != 0 {
				t.Errorf("Recommend() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestEngine_ScenarioC_NoDuplicatesAcrossGaps(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	courses := []models.Course{{CourseID: 5, CourseName: "Intro to SQL", LevelName: "beginner"}}
	idx := newTestIndex(t, []string{"sql", "intro"}, courses, []Vector{dense(0.8, 0.6)})

	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{
			{SkillName: "SQL", TargetLevel: "beginner"},
			{SkillName: "Intro", TargetLevel: "beginner"},
		},
	}, idx)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Skill != "SQL" {
		t.Errorf("course claimed by %q, want the first gap SQL", got[0].Skill)
	}
}

func TestEngine_ScenarioD_CompletedCourses(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	idx := sqlCorpus(t)

	got := e.Recommend(models.UserProfile{
		MissingSkills:    []models.SkillGap{{SkillName: "SQL", TargetLevel: "beginner"}},
		CompletedCourses: []int{1},
	}, idx)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].CourseID != 3 || got[0].MatchScore != 50.0 {
		t.Errorf("got %+v, want course 3 at 50.0", got[0])
	}
	if len(got[0].Chapters) != 0 || got[0].Chapters == nil {
		t.Errorf("chapters = %#v, want empty for malformed list", got[0].Chapters)
	}
}

func TestEngine_ScenarioE_IndexUnavailable(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{{SkillName: "SQL", TargetLevel: "beginner"}},
	}, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Recommend(nil index) = %#v, want empty non-nil slice", got)
	}
}

func TestEngine_FoundationBadge(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	idx := sqlCorpus(t)

	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{{SkillName: "sql", TargetLevel: "Mahir"}},
	}, idx)

	badges := map[int]models.Badge{}
	for _, it := range got {
		badges[it.CourseID] = it.Badge
	}
	want := map[int]models.Badge{
		2: models.BadgeTargetMatch,
		1: models.BadgeFoundation,
		3: models.BadgeFoundation,
	}
	if !reflect.DeepEqual(badges, want) {
		t.Errorf("badges = %v, want %v", badges, want)
	}
	if got[0].CourseID != 2 {
		t.Errorf("top course = %d, want 2 (highest similarity)", got[0].CourseID)
	}
}

func TestEngine_GlobalTopFive(t *testing.T) {
	e := NewEngine(nil, quietLogger())

	terms := []string{"sql", "python", "react"}
	var courses []models.Course
	var rows []Vector
	id := 0
	for term := 0; term < 3; term++ {
		for k := 0; k < 3; k++ {
			id++
			courses = append(courses, models.Course{CourseID: id, CourseName: fmt.Sprintf("%s %d", terms[term], k), LevelName: "beginner"})
			vals := make([]float64, 3)
			vals[term] = 0.9 - 0.1*float64(k) - 0.05*float64(term)
			rows = append(rows, dense(vals...))
		}
	}
	idx := newTestIndex(t, terms, courses, rows)

	got := e.Recommend(models.UserProfile{
		MissingSkills: []models.SkillGap{
			{SkillName: "react", TargetLevel: "beginner"},
			{SkillName: "sql", TargetLevel: "beginner"},
			{SkillName: "python", TargetLevel: "beginner"},
		},
	}, idx)

	if len(got) != MaxResults {
		t.Fatalf("len = %d, want %d", len(got), MaxResults)
	}
	wantIDs := []int{1, 4, 7, 2, 5}
	for i, want := range wantIDs {
		if got[i].CourseID != want {
			t.Errorf("position %d = course %d, want %d", i, got[i].CourseID, want)
		}
	}
}

func TestEngine_Properties(t *testing.T) {
	e := NewEngine(nil, quietLogger())
	rng := rand.New(rand.NewSource(42))

	terms := []string{"sql", "python", "react", "docker", "statistik", "vision", "nlp", "css"}
	levels := []string{"beginner", "Menengah", "advanced", "pemula", "mahir", "unknown"}

	var courses []models.Course
	var rows []Vector
	byID := map[int]models.Course{}
	for i := 0; i < 60; i++ {
		c := models.Course{
			CourseID:     1000 + i,
			CourseName:   fmt.Sprintf("course %d", i),
			LevelName:    levels[rng.Intn(len(levels))],
			TutorialList: `['a', 'b', 'c', 'd']`,
		}
		vals := make([]float64, len(terms))
		for k := range vals {
			if rng.Float64() < 0.3 {
				vals[k] = rng.Float64()
			}
		}
		courses = append(courses, c)
		rows = append(rows, dense(vals...).normalized())
		byID[c.CourseID] = c
	}
	idx := newTestIndex(t, terms, courses, rows)
	table := DefaultLevels()

	for trial := 0; trial < 50; trial++ {
		var profile models.UserProfile
		for g := 0; g < 1+rng.Intn(4); g++ {
			skill := terms[rng.Intn(len(terms))]
			if rng.Intn(2) == 0 {
				skill += " " + terms[rng.Intn(len(terms))]
			}
			profile.MissingSkills = append(profile.MissingSkills, models.SkillGap{
				SkillName:   skill,
				TargetLevel: levels[rng.Intn(len(levels))],
			})
		}
		for k := 0; k < rng.Intn(5); k++ {
			profile.CompletedCourses = append(profile.CompletedCourses, 1000+rng.Intn(60))
		}

		got := e.Recommend(profile, idx)

		if len(got) > MaxResults {
			t.Fatalf("trial %d: len = %d > %d", trial, len(got), MaxResults)
		}
		if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].MatchScore > got[j].MatchScore }) {
			t.Fatalf("trial %d: not sorted by match score", trial)
		}

		seen := map[int]bool{}
		completed := map[int]bool{}
		for _, id := range profile.CompletedCourses {
			completed[id] = true
		}
		for _, it := range got {
			course := byID[it.CourseID]
			courseOrd := table.Ordinal(course.LevelName)
			targetOrd := table.Ordinal(it.CurrentLevel)

			if courseOrd > targetOrd {
				t.Errorf("trial %d: course %d level %d exceeds target %d", trial, it.CourseID, courseOrd, targetOrd)
			}
			if (it.Badge == models.BadgeTargetMatch) != (courseOrd == targetOrd) {
				t.Errorf("trial %d: badge %q for course level %d target %d", trial, it.Badge, courseOrd, targetOrd)
			}
			if seen[it.CourseID] {
				t.Errorf("trial %d: course %d returned twice", trial, it.CourseID)
			}
			seen[it.CourseID] = true
			if completed[it.CourseID] {
				t.Errorf("trial %d: completed course %d returned", trial, it.CourseID)
			}
			if it.MatchScore < 10.0 || it.MatchScore > 100.0 {
				t.Errorf("trial %d: match score %.1f outside [10, 100]", trial, it.MatchScore)
			}
			if len(it.Chapters) > MaxChapters {
				t.Errorf("trial %d: %d chapters", trial, len(it.Chapters))
			}
		}

		if again := e.Recommend(profile, idx); !reflect.DeepEqual(got, again) {
			t.Fatalf("trial %d: second call differs", trial)
		}
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		sim  float64
		want float64
	}{
		{0.1, 10.0},
		{0.12345, 12.3},
		{0.9996, 100.0},
		{1.0000001, 100.0},
		{0.5, 50.0},
		{0.1225, 12.2},
		{0.1025, 10.2},
		{0.8125, 81.2},
		{0.5625, 56.2},
	}
	for _, tt := range tests {
		if got := matchScore(tt.sim); got != tt.want {
			t.Errorf("matchScore(%v) = %v, want %v", tt.sim, got, tt.want)
		}
	}
}
