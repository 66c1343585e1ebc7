package curriculum

import (
	"fmt"
	"strings"
)

// Validate checks the curriculum for structural issues.
// Returns a combined error describing all problems found, or nil if valid.
func (c *Curriculum) Validate() error {
	errs := c.problems()
	if len(errs) > 0 {
		return fmt.Errorf("curriculum %q validation failed:\n  %s", c.ID, strings.Join(errs, "\n  "))
	}
	return nil
}

// problems performs all structural checks and returns one line per issue.
func (c *Curriculum) problems() []string {
	var errs []string

	if c.ID == "" {
		errs = append(errs, "curriculum ID is empty")
	}

	codeSet := make(map[string]bool)
	var courses []Course

	// Check for duplicate codes and credit counts
	for _, b := range c.Blocks {
		for _, course := range b.Courses {
			if course.Code == "" {
				errs = append(errs, fmt.Sprintf("block %d has a course with an empty code", b.ID))
				continue
			}
			if codeSet[course.Code] {
				errs = append(errs, fmt.Sprintf("duplicate course code: %q", course.Code))
				continue
			}
			codeSet[course.Code] = true
			courses = append(courses, course)
			if course.Credits <= 0 {
				errs = append(errs, fmt.Sprintf("course %q: credits must be > 0, got %d", course.Code, course.Credits))
			}
		}
	}

	// Check for dangling and self references
	for _, course := range courses {
		for _, pre := range course.Prerequisites {
			switch {
			case pre == course.Code:
				errs = append(errs, fmt.Sprintf("course %q lists itself as a prerequisite", course.Code))
			case !codeSet[pre]:
				errs = append(errs, fmt.Sprintf("course %q references nonexistent prerequisite %q", course.Code, pre))
			}
		}
		for _, co := range course.Corequisites {
			switch {
			case co == course.Code:
				errs = append(errs, fmt.Sprintf("course %q lists itself as a corequisite", course.Code))
			case !codeSet[co]:
				errs = append(errs, fmt.Sprintf("course %q references nonexistent corequisite %q", course.Code, co))
			}
		}
	}

	// Check prerequisite edges for cycles using Kahn's algorithm.
	// Corequisites are allowed to point at each other.
	inDegree := make(map[string]int, len(courses))
	adjList := make(map[string][]string)
	for _, course := range courses {
		for _, pre := range course.Prerequisites {
			if !codeSet[pre] || pre == course.Code {
				continue
			}
			inDegree[course.Code]++
			adjList[pre] = append(adjList[pre], course.Code)
		}
	}

	var queue []string
	for _, course := range courses {
		if inDegree[course.Code] == 0 {
			queue = append(queue, course.Code)
		}
	}

	visited := 0
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adjList[code] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(courses) {
		var cycle []string
		for _, course := range courses {
			if inDegree[course.Code] > 0 {
				cycle = append(cycle, course.Code)
			}
		}
		errs = append(errs, fmt.Sprintf("prerequisite cycle detected involving courses: %s", strings.Join(cycle, ", ")))
	}

	return errs
}
