// Package types defines the data structures shared by the devassist commands.
package types

const (
	FormatMarkdown = "markdown"
	FormatXML      = "xml"
)

// CollectedFile is one exported file: its forward-slash path relative to the
// project root and its transformed content.
type CollectedFile struct {
	RelativePath string
	Content      string
}

// Bundle is everything an export renders into a single document.
type Bundle struct {
	ProjectName string
	// Framework is the detected project framework; empty omits it.
	Framework string
	// Structure is the rendered project structure; empty omits the section.
	Structure string
	Files     []CollectedFile
}

// TokenSummary reports the estimated size of a rendered bundle.
type TokenSummary struct {
	Tokens int
	Model  string
}
