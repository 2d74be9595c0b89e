package portfolio

// Canonical content. Every function here builds a fresh value so that no two
// profiles share backing arrays.

const (
	defaultName        = "Ishant Kumar"
	defaultTitle       = "AI Engineer | Data Scientist | Full Stack Developer | Electrical Engineer"
	defaultPositioning = "Building intelligent systems at the intersection of AI, software engineering, and embedded technology."
	defaultSummary     = "I am a Data Science and Applications student at IIT Madras with a strong foundation in Electrical Engineering from MMMUT. I specialize in backend engineering, AI-driven systems, and data-intensive applications."
	defaultVision      = "My long-term goal is to build intelligent cyber-physical systems that combine AI, robotics, and embedded engineering to solve real-world problems in infrastructure, healthcare, and automation. I am currently building AI-first platforms, learning advanced control systems, and preparing for research internships in applied AI and robotics."
)

func canonicalTags() []string {
	return []string{
		"Artificial Intelligence & Data Science",
		"Backend & Distributed Systems",
		"Robotics, IoT & Computer Vision",
	}
}

func canonicalSkills() map[SkillCategory][]string {
	return map[SkillCategory][]string{
		SkillProgramming: {"Python", "Java", "JavaScript", "SQL", "Bash"},
		SkillBackend:     {"Flask", "FastAPI", "Django", "Django REST Framework", "JWT Authentication", "Celery & Redis", "REST & GraphQL"},
		SkillFrontend:    {"Vue.js (v2 & v3)", "Bootstrap 5", "Tailwind CSS"},
		SkillDatabases:   {"PostgreSQL", "MySQL", "Redis"},
		SkillAI:          {"Machine Learning", "Deep Learning", "Computer Vision", "Web Scraping & Data Pipelines", "Prompt Engineering", "Data Analysis"},
		SkillElectrical:  {"Microprocessors (8085)", "Embedded Systems", "Sensors & Actuators", "Robotics Systems", "IoT Architectures"},
		SkillDevOps:      {"Linux (WSL)", "Git & GitHub", "Docker", "CI/CD", "System Design"},
	}
}

func canonicalProjects() []Project {
	return []Project{
		{
			Name:        "Quiz Master",
			Description: "A scalable online quiz and assessment platform with real-time evaluation and background task processing.",
			Problem:     "Traditional quiz platforms fail to scale under high concurrency and lack real-time analytics.",
			Solution:    "Built a distributed backend using asynchronous workers and caching layers.",
			TechStack:   []string{"Flask", "Vue.js", "Redis", "Celery", "PostgreSQL"},
			Features:    []string{"Role-based authentication", "Real-time quiz evaluation", "Async result processing", "Caching for performance", "Admin dashboard"},
		},
		{
			Name:        "HousyDousy",
			Description: "A service marketplace platform connecting users with verified home service professionals.",
			TechStack:   []string{"Flask", "Bootstrap", "PostgreSQL"},
			Features:    []string{"User & professional onboarding", "Booking system", "Admin management", "Service tracking"},
		},
		{
			Name:        "Vispr",
			Description: "A modern media-sharing social platform with real-time interactions.",
			TechStack:   []string{"Django", "Tailwind CSS", "PostgreSQL"},
			Features:    []string{"Image & text sharing", "Social interactions", "User profiles", "Feed system"},
		},
		{
			Name:        "Inventro",
			Description: "An enterprise-grade inventory and warehouse management backend.",
			TechStack:   []string{"Python", "PostgreSQL", "REST API"},
			Features:    []string{"Company & warehouse management", "SKU & product tracking", "Role-based access control", "Audit trails", "Order processing", "Dispatch & logistics"},
		},
		{
			Name:        "Agentic AI API Platform",
			Description: "A deployable agentic AI platform for automated data sourcing, analysis, and visualization.",
			TechStack:   []string{"Python", "AI/ML", "REST API", "Data Visualization"},
			Features:    []string{"Web scraping", "Data cleaning", "Automated analysis", "Chart generation", "JSON API responses"},
		},
	}
}

func canonicalResearch() []string {
	return []string{
		"Artificial Intelligence & Deep Learning",
		"Computer Vision for Robotics",
		"Autonomous Systems",
		"Embedded AI",
		"Cyber-Physical Systems",
		"Optimization & Control",
		"Smart Infrastructure",
		"Edge Computing",
	}
}

func canonicalEducation() []Education {
	return []Education{
		{
			Institution:  "IIT Madras",
			Degree:       "B.Sc. Data Science & Applications",
			GPA:          "9.41",
			Achievements: []string{"Topper in 14 Subjects"},
		},
		{
			Institution: "MMMUT",
			Degree:      "B.Tech Electrical Engineering",
			Focus:       "Microprocessors, Embedded Systems, Control Systems",
		},
	}
}

func canonicalAchievements() []Achievement {
	return []Achievement{
		{Category: "Academic", Items: []string{"Topper in 14 IIT Madras subjects", "Scholarship recipient"}},
		{Category: "Coding", Items: []string{"5★ Python on HackerRank", "Master Rank on Code360 (12,306 XP)"}},
		{Category: "Certifications", Items: []string{"Harvard CS50", "freeCodeCamp Full Stack Certification"}},
	}
}

func canonicalContact() Contact {
	return Contact{
		Email:    "ishant9805@gmail.com",
		LinkedIn: "https://linkedin.com/in/ishantkumar9805",
		Profiles: []string{"github.com/ishant9805", "github.com/23f2001685"},
	}
}

// ExtractDefaults returns the canonical profile. Callers that cannot obtain
// the document at all use this instead of Extract.
func ExtractDefaults() Profile {
	return Profile{
		Hero: Hero{
			Name:        defaultName,
			Title:       defaultTitle,
			Positioning: defaultPositioning,
			Tags:        canonicalTags(),
		},
		About:        About{Summary: defaultSummary},
		Skills:       canonicalSkills(),
		Projects:     canonicalProjects(),
		Research:     canonicalResearch(),
		Education:    canonicalEducation(),
		Achievements: canonicalAchievements(),
		Contact:      canonicalContact(),
		Vision:       defaultVision,
	}
}
