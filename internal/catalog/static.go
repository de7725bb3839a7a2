package catalog

import (
	"fmt"
	"strings"
)

// The static catalog is the last-resort source when every live catalog is
// down or unconfigured. Entries are generated deterministically from fixed
// templates so repeated runs always see the same candidates in the same
// order.

const StaticSourceID = "static"

type courseTopic struct {
	title    string
	skills   []string
	category string
	level    string
}

type jobTemplate struct {
	title    string
	company  string
	category string
	skills   []string
	location string
	level    string
}

var courseProviders = []string{"MIT OpenCourseWare", "Coursera", "edX", "Udemy"}

var courseTopics = []courseTopic{
	{
		title:    "Mastering Machine Learning Algorithms",
		skills:   []string{"Machine Learning", "Python", "Neural Networks", "Data Analysis"},
		category: "Technology",
		level:    "Intermediate",
	},
	{
		title:    "Full-Stack Web Development Mastery",
		skills:   []string{"HTML", "CSS", "JavaScript", "React", "Node.js"},
		category: "Technology",
		level:    "Beginner",
	},
	{
		title:    "Data Science & Business Intelligence",
		skills:   []string{"R", "Python", "Statistics", "Data Visualization", "SQL"},
		category: "Technology",
		level:    "Intermediate",
	},
	{
		title:    "Cybersecurity Defense & Offense",
		skills:   []string{"Encryption", "Network Security", "Risk Management", "Incident Response"},
		category: "Technology",
		level:    "Advanced",
	},
	{
		title:    "Advanced Digital Marketing Strategy",
		skills:   []string{"SEO", "Social Media", "Content Marketing", "Analytics"},
		category: "Marketing",
		level:    "Intermediate",
	},
	{
		title:    "Agile Project Management Professional",
		skills:   []string{"Agile", "Scrum", "Risk Management", "Leadership"},
		category: "Business",
		level:    "Intermediate",
	},
	{
		title:    "UX/UI Design & User Experience",
		skills:   []string{"Figma", "User Research", "Prototyping", "Accessibility"},
		category: "Design",
		level:    "Beginner",
	},
	{
		title:    "Financial Accounting & Analysis",
		skills:   []string{"Bookkeeping", "Balance Sheets", "Budgeting", "Tax"},
		category: "Business",
		level:    "Beginner",
	},
	{
		title:    "Startup Entrepreneurship & Innovation",
		skills:   []string{"Business Planning", "Pitching", "Market Research", "Funding"},
		category: "Business",
		level:    "Intermediate",
	},
	{
		title:    "Blockchain Development & Smart Contracts",
		skills:   []string{"Blockchain", "Ethereum", "Smart Contracts", "Solidity"},
		category: "Technology",
		level:    "Advanced",
	},
}

var jobTemplates = []jobTemplate{
	{
		title:    "Frontend Developer",
		company:  "Nuqta Labs",
		category: "Software Engineering",
		skills:   []string{"JavaScript", "React", "HTML", "CSS", "TypeScript"},
		location: "Remote",
		level:    "Mid Level",
	},
	{
		title:    "Backend Developer",
		company:  "Gulf Cloud Systems",
		category: "Software Engineering",
		skills:   []string{"Node.js", "Python", "PostgreSQL", "AWS"},
		location: "Dubai",
		level:    "Mid Level",
	},
	{
		title:    "Full Stack Developer",
		company:  "Ramallah Tech House",
		category: "Software Engineering",
		skills:   []string{"JavaScript", "Node.js", "React", "MongoDB"},
		location: "Ramallah",
		level:    "Entry Level",
	},
	{
		title:    "Data Analyst",
		company:  "Levant Analytics",
		category: "Data",
		skills:   []string{"SQL", "Python", "Excel", "Data Visualization"},
		location: "Amman",
		level:    "Entry Level",
	},
	{
		title:    "Digital Marketing Specialist",
		company:  "Sahara Media Group",
		category: "Marketing",
		skills:   []string{"SEO", "Social Media", "Content Marketing"},
		location: "Remote",
		level:    "Mid Level",
	},
	{
		title:    "UX Designer",
		company:  "Mada Studio",
		category: "Design",
		skills:   []string{"Figma", "User Research", "Prototyping"},
		location: "Remote",
		level:    "Mid Level",
	},
	{
		title:    "Project Coordinator",
		company:  "Horizon NGO Network",
		category: "Business",
		skills:   []string{"Scheduling", "Reporting", "Communication"},
		location: "Jerusalem",
		level:    "Entry Level",
	},
	{
		title:    "AI Consultant",
		company:  "Qamar Intelligence",
		category: "Technology",
		skills:   []string{"Machine Learning", "Python", "Consulting"},
		location: "Remote",
		level:    "Senior Level",
	},
}

// StaticCourses returns the generated course candidates.
func StaticCourses() []Candidate {
	out := make([]Candidate, 0, len(courseTopics)*len(courseProviders))
	n := 0
	for _, topic := range courseTopics {
		for _, provider := range courseProviders {
			n++
			nativeID := fmt.Sprintf("course-%03d", n)
			out = append(out, Candidate{
				ID:          ComposeID(StaticSourceID, nativeID),
				Kind:        KindCourse,
				Title:       topic.title,
				Provider:    provider,
				Category:    topic.category,
				Skills:      append([]string(nil), topic.skills...),
				Description: fmt.Sprintf("%s offered by %s. Covers %s.", topic.title, provider, strings.Join(topic.skills, ", ")),
				Level:       topic.level,
				Raw:         RawItem{SourceID: StaticSourceID},
			})
		}
	}
	return out
}

// StaticJobs returns the generated job candidates.
func StaticJobs() []Candidate {
	out := make([]Candidate, 0, len(jobTemplates))
	for i, tpl := range jobTemplates {
		nativeID := fmt.Sprintf("job-%03d", i+1)
		out = append(out, Candidate{
			ID:          ComposeID(StaticSourceID, nativeID),
			Kind:        KindJob,
			Title:       tpl.title,
			Provider:    tpl.company,
			Category:    tpl.category,
			Skills:      append([]string(nil), tpl.skills...),
			Description: fmt.Sprintf("%s is hiring a %s. Key skills: %s.", tpl.company, tpl.title, strings.Join(tpl.skills, ", ")),
			Level:       tpl.level,
			Location:    tpl.location,
			Raw:         RawItem{SourceID: StaticSourceID},
		})
	}
	return out
}

// FilterByKeywords keeps candidates whose title, category or skills contain
// any of the space-separated keywords, case-insensitively. An empty keyword
// string keeps everything.
func FilterByKeywords(items []Candidate, keywords string) []Candidate {
	terms := strings.Fields(strings.ToLower(keywords))
	if len(terms) == 0 {
		return items
	}

	out := make([]Candidate, 0, len(items))
	for _, c := range items {
		haystack := strings.ToLower(c.Title + " " + c.Category + " " + strings.Join(c.Skills, " "))
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
