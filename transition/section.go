package transition

import "strings"

// Section names one of the portfolio destinations.
type Section string

const (
	SectionAbout   Section = "about"
	SectionTech    Section = "tech"
	SectionBlog    Section = "blog"
	SectionFashion Section = "fashion"
	SectionMerch   Section = "merch"
)

// KnownSections lists the five built-in sections in navigation order.
func KnownSections() []Section {
	return []Section{SectionAbout, SectionTech, SectionBlog, SectionFashion, SectionMerch}
}

// Label is the uppercased name shown by the loading indicator.
func (s Section) Label() string {
	return strings.ToUpper(string(s))
}

func (s Section) String() string {
	return string(s)
}
