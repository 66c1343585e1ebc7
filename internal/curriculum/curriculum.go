package curriculum

import (
	"slices"
	"strings"
	"sync"
)

// Curriculum is the full set of blocks for one academic program. It is
// read-only once loaded and safe to share between goroutines.
type Curriculum struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	University string  `json:"university,omitempty" yaml:"university,omitempty"`
	Version    string  `json:"version,omitempty" yaml:"version,omitempty"`
	Blocks     []Block `json:"blocks" yaml:"blocks"`

	once sync.Once
	idx  *index
}

// index holds lookups precomputed from the blocks.
type index struct {
	courses    []Course
	byCode     map[string]int
	blockOf    map[string]int
	dependents map[string][]string
}

// New builds a curriculum from its blocks.
func New(id, name string, blocks ...Block) *Curriculum {
	return &Curriculum{ID: id, Name: name, Blocks: blocks}
}

func (c *Curriculum) index() *index {
	c.once.Do(func() {
		ix := &index{
			byCode:     make(map[string]int),
			blockOf:    make(map[string]int),
			dependents: make(map[string][]string),
		}
		for bi, b := range c.Blocks {
			for _, course := range b.Courses {
				// First occurrence wins; duplicates are reported by Validate.
				if _, dup := ix.byCode[course.Code]; dup {
					continue
				}
				ix.byCode[course.Code] = len(ix.courses)
				ix.blockOf[course.Code] = bi
				ix.courses = append(ix.courses, course)
			}
		}
		for _, course := range ix.courses {
			for _, pre := range course.Prerequisites {
				ix.dependents[pre] = append(ix.dependents[pre], course.Code)
			}
		}
		c.idx = ix
	})
	return c.idx
}

// Course returns the course with the given code.
func (c *Curriculum) Course(code string) (Course, bool) {
	ix := c.index()
	i, ok := ix.byCode[code]
	if !ok {
		return Course{}, false
	}
	return ix.courses[i], true
}

// Resolve maps user input to a course code. An exact match wins; otherwise
// the first course whose code matches ignoring case is returned.
func (c *Curriculum) Resolve(input string) (string, bool) {
	ix := c.index()
	if _, ok := ix.byCode[input]; ok {
		return input, true
	}
	for _, course := range ix.courses {
		if strings.EqualFold(course.Code, input) {
			return course.Code, true
		}
	}
	return "", false
}

// Has reports whether code names a course in the curriculum.
func (c *Curriculum) Has(code string) bool {
	_, ok := c.index().byCode[code]
	return ok
}

// Courses returns every course in block order.
func (c *Curriculum) Courses() []Course {
	return slices.Clone(c.index().courses)
}

// BlockOf returns the block that contains the course.
func (c *Curriculum) BlockOf(code string) (Block, bool) {
	bi, ok := c.index().blockOf[code]
	if !ok {
		return Block{}, false
	}
	return c.Blocks[bi], true
}

// TotalCredits is the sum of the declared block credit totals.
func (c *Curriculum) TotalCredits() int {
	total := 0
	for _, b := range c.Blocks {
		total += b.TotalCredits
	}
	return total
}

// Prerequisites returns the prerequisite courses of code. Codes that do not
// resolve are skipped.
func (c *Curriculum) Prerequisites(code string) []Course {
	course, ok := c.Course(code)
	if !ok {
		return nil
	}
	return c.resolve(course.Prerequisites)
}

// Corequisites returns the corequisite courses of code, for display.
// Codes that do not resolve are skipped.
func (c *Curriculum) Corequisites(code string) []Course {
	course, ok := c.Course(code)
	if !ok {
		return nil
	}
	return c.resolve(course.Corequisites)
}

// Dependents returns the courses that list code as a prerequisite.
func (c *Curriculum) Dependents(code string) []Course {
	return c.resolve(c.index().dependents[code])
}

func (c *Curriculum) resolve(codes []string) []Course {
	result := make([]Course, 0, len(codes))
	for _, code := range codes {
		if course, ok := c.Course(code); ok {
			result = append(result, course)
		}
	}
	return result
}
