package lessons

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownLesson is returned by Get for an ID with no lesson.
var ErrUnknownLesson = errors.New("unknown lesson")

// catalogue is the ordered lesson list, built once by init.
var catalogue []Lesson

func init() {
	ls := []Lesson{
		lessonSelect(),
		lessonWhere(),
		lessonOrderBy(),
		lessonLimit(),
		lessonDistinct(),
		lessonAggregates(),
		lessonGroupBy(),
		lessonHaving(),
		lessonInsert(),
		lessonUpdate(),
		lessonDelete(),
		lessonCreateTable(),
		lessonJoins(),
		lessonSubqueries(),
		lessonLike(),
		lessonCase(),
		lessonUnion(),
		lessonCTE(),
		lessonWindow(),
		lessonBetween(),
	}
	if err := checkIDs(ls); err != nil {
		panic(err)
	}
	catalogue = ls
}

// checkIDs requires IDs to run 1..n in order.
func checkIDs(ls []Lesson) error {
	for i, l := range ls {
		if l.ID != i+1 {
			return fmt.Errorf("lesson at position %d has ID %d", i, l.ID)
		}
	}
	return nil
}

// All returns every lesson ordered by ID.
func All() []Lesson {
	return slices.Clone(catalogue)
}

// Get returns the lesson with the given ID.
func Get(id int) (Lesson, error) {
	if id < 1 || id > len(catalogue) {
		return Lesson{}, fmt.Errorf("%w: %d", ErrUnknownLesson, id)
	}
	return catalogue[id-1], nil
}

// Count returns the number of lessons.
func Count() int {
	return len(catalogue)
}

// ExerciseCounts returns the exercise count of each lesson in ID order.
func ExerciseCounts() []int {
	sizes := make([]int, len(catalogue))
	for i, l := range catalogue {
		sizes[i] = len(l.Exercises)
	}
	return sizes
}
