// Package progress keeps the durable per-learner progress ledger.
package progress

import "slices"

// LessonCount is the number of lessons the ledger tracks.
const LessonCount = 20

// RecordVersion is written with every saved record. A stored record whose
// major version differs is discarded on load.
const RecordVersion = "v1.0.0"

// Record is the persisted ledger state. Slices are indexed by lesson ID - 1.
type Record struct {
	Version         string   `json:"version"`
	CurrentLessonID int      `json:"currentLessonId"`
	Completed       []bool   `json:"completed"`
	BestScore       []int    `json:"bestScore"`
	ExercisesDone   [][]bool `json:"exercisesDone"`
}

// Default returns an empty record sized for the given exercise counts.
func Default(sizes []int) Record {
	rec := Record{
		Version:         RecordVersion,
		CurrentLessonID: 1,
		Completed:       make([]bool, LessonCount),
		BestScore:       make([]int, LessonCount),
		ExercisesDone:   make([][]bool, LessonCount),
	}
	for i := range rec.ExercisesDone {
		rec.ExercisesDone[i] = make([]bool, sizeAt(sizes, i))
	}
	return rec
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Completed = slices.Clone(r.Completed)
	out.BestScore = slices.Clone(r.BestScore)
	out.ExercisesDone = make([][]bool, len(r.ExercisesDone))
	for i, row := range r.ExercisesDone {
		out.ExercisesDone[i] = slices.Clone(row)
	}
	return out
}

// normalize brings r to the current shape. Exercise rows grow to the current
// exercise count but never shrink, so no earned flag is lost when a lesson
// loses an exercise. Best scores are clamped to 0..maxScore when maxScore
// is positive.
func (r *Record) normalize(sizes []int, maxScore int) {
	r.Version = RecordVersion
	if r.CurrentLessonID < 1 || r.CurrentLessonID > LessonCount {
		r.CurrentLessonID = 1
	}

	r.Completed = resizeBools(r.Completed, LessonCount)
	r.Completed = r.Completed[:LessonCount]

	scores := make([]int, LessonCount)
	for i := 0; i < LessonCount && i < len(r.BestScore); i++ {
		scores[i] = max(r.BestScore[i], 0)
		if maxScore > 0 {
			scores[i] = min(scores[i], maxScore)
		}
	}
	r.BestScore = scores

	rows := make([][]bool, LessonCount)
	for i := range rows {
		var row []bool
		if i < len(r.ExercisesDone) {
			row = r.ExercisesDone[i]
		}
		rows[i] = resizeBools(row, sizeAt(sizes, i))
	}
	r.ExercisesDone = rows

	for i := range LessonCount {
		if allDone(r.ExercisesDone[i], sizeAt(sizes, i)) {
			r.Completed[i] = true
		}
	}
}

// resizeBools grows s to at least n entries.
func resizeBools(s []bool, n int) []bool {
	if len(s) >= n {
		return slices.Clone(s)
	}
	out := make([]bool, n)
	copy(out, s)
	return out
}

// allDone reports whether the first n flags are all set. A lesson without
// exercises is never completed through this path.
func allDone(row []bool, n int) bool {
	if n == 0 || len(row) < n {
		return false
	}
	for _, done := range row[:n] {
		if !done {
			return false
		}
	}
	return true
}

func sizeAt(sizes []int, i int) int {
	if i < len(sizes) {
		return sizes[i]
	}
	return 0
}

// Passed reports whether score out of total meets percent.
func Passed(score, total, percent int) bool {
	if total <= 0 {
		return false
	}
	return score*100 >= total*percent
}
