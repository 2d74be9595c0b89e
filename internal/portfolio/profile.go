// Package portfolio turns the loosely structured about-me document into a
// typed Profile for the site. Extraction is best effort: every field that
// cannot be found in the document keeps its canonical default.
package portfolio

// SkillCategory names one of the fixed skill groups shown on the site.
type SkillCategory string

const (
	SkillProgramming SkillCategory = "programming"
	SkillBackend     SkillCategory = "backend"
	SkillFrontend    SkillCategory = "frontend"
	SkillDatabases   SkillCategory = "databases"
	SkillAI          SkillCategory = "ai"
	SkillElectrical  SkillCategory = "electrical"
	SkillDevOps      SkillCategory = "devops"
)

// SkillCategories lists every category in display order.
var SkillCategories = []SkillCategory{
	SkillProgramming,
	SkillBackend,
	SkillFrontend,
	SkillDatabases,
	SkillAI,
	SkillElectrical,
	SkillDevOps,
}

type Hero struct {
	Name        string   `json:"name" yaml:"name"`
	Title       string   `json:"title" yaml:"title"`
	Positioning string   `json:"positioning" yaml:"positioning"`
	Tags        []string `json:"tags" yaml:"tags"`
}

type About struct {
	Summary string `json:"summary" yaml:"summary"`
}

// Project is one portfolio entry. Problem and Solution are optional.
type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Problem     string   `json:"problem,omitempty" yaml:"problem,omitempty"`
	Solution    string   `json:"solution,omitempty" yaml:"solution,omitempty"`
	TechStack   []string `json:"techStack" yaml:"techStack"`
	Features    []string `json:"features" yaml:"features"`
}

// Education is one degree. GPA, Focus and Achievements are optional.
type Education struct {
	Institution  string   `json:"institution" yaml:"institution"`
	Degree       string   `json:"degree" yaml:"degree"`
	GPA          string   `json:"cgpa,omitempty" yaml:"cgpa,omitempty"`
	Focus        string   `json:"focus,omitempty" yaml:"focus,omitempty"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

type Achievement struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

type Contact struct {
	Email    string   `json:"email" yaml:"email"`
	LinkedIn string   `json:"linkedin" yaml:"linkedin"`
	Profiles []string `json:"github" yaml:"github"`
}

// Profile is everything the site renders. A Profile returned by Extract or
// ExtractDefaults is complete and owns all of its slices and maps; treat it
// as read-only once built.
type Profile struct {
	Hero         Hero                       `json:"hero" yaml:"hero"`
	About        About                      `json:"about" yaml:"about"`
	Skills       map[SkillCategory][]string `json:"skills" yaml:"skills"`
	Projects     []Project                  `json:"projects" yaml:"projects"`
	Research     []string                   `json:"research" yaml:"research"`
	Education    []Education                `json:"education" yaml:"education"`
	Achievements []Achievement              `json:"achievements" yaml:"achievements"`
	Contact      Contact                    `json:"contact" yaml:"contact"`
	Vision       string                     `json:"vision" yaml:"vision"`
}

// Missing reports the paths of required fields that are empty. A profile
// produced by this package always returns nil.
func (p Profile) Missing() []string {
	var missing []string
	check := func(path string, empty bool) {
		if empty {
			missing = append(missing, path)
		}
	}

	check("hero.name", p.Hero.Name == "")
	check("hero.title", p.Hero.Title == "")
	check("hero.positioning", p.Hero.Positioning == "")
	check("hero.tags", len(p.Hero.Tags) == 0)
	check("about.summary", p.About.Summary == "")
	for _, c := range SkillCategories {
		check("skills."+string(c), len(p.Skills[c]) == 0)
	}
	check("projects", len(p.Projects) == 0)
	for _, proj := range p.Projects {
		check("projects.name", proj.Name == "")
		check("projects["+proj.Name+"].techStack", proj.TechStack == nil)
		check("projects["+proj.Name+"].features", proj.Features == nil)
	}
	check("research", len(p.Research) == 0)
	check("education", len(p.Education) == 0)
	check("achievements", len(p.Achievements) == 0)
	check("contact.email", p.Contact.Email == "")
	check("contact.linkedin", p.Contact.LinkedIn == "")
	check("contact.github", len(p.Contact.Profiles) == 0)
	check("vision", p.Vision == "")
	return missing
}
