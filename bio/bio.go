package bio

// Static biography data rendered on the home page. Icons are resolved
// through a fixed skill-name lookup rather than runtime reflection; the
// handle names the glyph the templates reference.

type Education struct {
	Degree string
	Field  string
	School string
	Year   string
}

type Skill struct {
	Name string
	Icon string
}

type Info struct {
	Name      string
	Title     string
	Location  string
	AvatarSrc string
	Bio       []string
	Education []Education
	Skills    Skills
}

type Skills struct {
	Proficient []Skill
	Learning   []Skill
	Misc       []Skill
}

// iconHandles maps a skill name to its icon handle. Unknown skills fall
// back to a generic glyph.
var iconHandles = map[string]string{
	"Go":         "si-go",
	"React":      "si-react",
	"Python":     "si-python",
	"Unity/C#":   "si-unity",
	"PyTorch":    "si-pytorch",
	"AWS":        "fa-aws",
	"Figma":      "si-figma",
	"GitHub":     "si-github",
	"G Suite":    "fa-google",
	"TypeScript": "si-typescript",
	"SQLite":     "si-sqlite",
}

const fallbackIcon = "fa-code"

// IconFor resolves a skill name to its icon handle.
func IconFor(name string) string {
	if handle, ok := iconHandles[name]; ok {
		return handle
	}
	return fallbackIcon
}

func skill(name string) Skill {
	return Skill{Name: name, Icon: IconFor(name)}
}

// Current returns the bio rendered on the home page.
func Current() Info {
	return Info{
		Name:      "Justin Blumencranz",
		Title:     "Programmer + Designer",
		Location:  "Palo Alto, California",
		AvatarSrc: "/public/profile.jpeg",
		Bio: []string{
			"Building connection through technology and play",
			"I am a software engineer and designer who loves building thoughtful, user-centered systems. My work spans full-stack web development, UI/UX, and interactive experiences.",
		},
		Education: []Education{
			{Degree: "M.S. (in progress)", Field: "Computer Science (Artificial Intelligence)", School: "Stanford University", Year: "2026"},
			{Degree: "B.S. (in progress)", Field: "Symbolic Systems (Human Computer Interaction)", School: "Stanford University", Year: "2026"},
		},
		Skills: Skills{
			Proficient: []Skill{skill("React"), skill("Python"), skill("Unity/C#")},
			Learning:   []Skill{skill("PyTorch"), skill("Go"), skill("AWS")},
			Misc:       []Skill{skill("Figma"), skill("GitHub"), skill("G Suite")},
		},
	}
}
