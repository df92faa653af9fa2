package domain

import "math"

// Progress summarizes sub-lesson completion.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// LessonProgress is Progress scoped to one lesson.
type LessonProgress struct {
	Progress
	IsCompleted bool `json:"isCompleted"`
}

// CalculateProgress counts completed sub-lessons across all lessons.
func CalculateProgress(lessons []*Lesson) Progress {
	var p Progress
	for _, l := range lessons {
		p.Total += len(l.SubLessons)
		for _, s := range l.SubLessons {
			if s.Completed {
				p.Completed++
			}
		}
	}
	p.Percentage = percentage(p.Completed, p.Total)
	return p
}

// CalculateLessonProgress scopes CalculateProgress to one lesson. A lesson
// without sub-lessons is complete (0 of 0). An unknown lesson id reports
// found=false and a zero, incomplete result.
func CalculateLessonProgress(lessons []*Lesson, lessonID int) (LessonProgress, bool) {
	l, ok := FindLesson(lessons, lessonID)
	if !ok {
		return LessonProgress{}, false
	}
	p := CalculateProgress([]*Lesson{l})
	return LessonProgress{Progress: p, IsCompleted: p.Completed == p.Total}, true
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
