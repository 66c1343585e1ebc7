package curriculum

// Course is a single curriculum unit.
type Course struct {
	Code          string   `json:"code" yaml:"code"`
	Name          string   `json:"name" yaml:"name"`
	Credits       int      `json:"credits" yaml:"credits"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
	Corequisites  []string `json:"corequisites,omitempty" yaml:"corequisites,omitempty"`
}

// HasPrerequisites reports whether the course lists any prerequisite.
func (c Course) HasPrerequisites() bool {
	return len(c.Prerequisites) > 0
}

// HasCorequisites reports whether the course lists any corequisite.
func (c Course) HasCorequisites() bool {
	return len(c.Corequisites) > 0
}

// Block is a named grouping of courses, usually one term of the program.
type Block struct {
	ID           int      `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	TotalCredits int      `json:"totalCredits" yaml:"totalCredits"`
	Courses      []Course `json:"courses" yaml:"courses"`
}

// CourseCredits sums the credits of the courses in the block. It may differ
// from the declared TotalCredits when a block carries electives.
func (b Block) CourseCredits() int {
	total := 0
	for _, c := range b.Courses {
		total += c.Credits
	}
	return total
}
