// Package output renders export bundles as markdown or XML documents.
package output

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/devassist/internal/types"
	"github.com/temirov/devassist/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader       = xml.Header
	xmlOutputSuffix = ".xml"

	markdownTitleFormat     = "# Project Export: %s\n\n"
	markdownFrameworkFormat = "**Framework:** %s\n\n"
	markdownStructureHeader = "## Project Structure\n\n"
	markdownStructureFence  = "```plaintext\n"
	markdownStructureRoot   = "/%s\n"
	markdownContentsHeader  = "## File Contents\n\n"
	markdownFileFormat      = "## File: %s\n```%s\n%s\n```\n\n"
	markdownFenceClose      = "```\n\n"

	unknownFormatErrorFormat = "output: unknown format %q"
	xmlMarshalErrorFormat    = "output: marshal xml: %w"
)

type xmlProject struct {
	XMLName   xml.Name  `xml:"project_structure"`
	Name      string    `xml:"name,omitempty"`
	Framework string    `xml:"framework,omitempty"`
	Structure *xmlCData `xml:"structure,omitempty"`
	Paths     []string  `xml:"files_list>path"`
	Files     []xmlFile `xml:"files>file"`
}

type xmlCData struct {
	Text string `xml:",cdata"`
}

type xmlFile struct {
	Path    string `xml:"path,attr"`
	Content string `xml:",cdata"`
}

// ResolveFormat returns the requested format, or the format implied by the
// output file name when none is requested: XML for ".xml", markdown otherwise.
func ResolveFormat(requestedFormat string, outputPath string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(requestedFormat)) {
	case utils.EmptyString:
		if strings.EqualFold(filepath.Ext(outputPath), xmlOutputSuffix) {
			return types.FormatXML, nil
		}
		return types.FormatMarkdown, nil
	case types.FormatMarkdown:
		return types.FormatMarkdown, nil
	case types.FormatXML:
		return types.FormatXML, nil
	default:
		return utils.EmptyString, fmt.Errorf(unknownFormatErrorFormat, requestedFormat)
	}
}

// Render renders bundle in the given format.
func Render(format string, bundle types.Bundle) (string, error) {
	switch format {
	case types.FormatMarkdown:
		return RenderMarkdown(bundle), nil
	case types.FormatXML:
		return RenderXML(bundle)
	default:
		return utils.EmptyString, fmt.Errorf(unknownFormatErrorFormat, format)
	}
}

// RenderMarkdown renders bundle as a markdown document with one fenced block per file.
func RenderMarkdown(bundle types.Bundle) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(markdownTitleFormat, bundle.ProjectName))
	if bundle.Framework != utils.EmptyString {
		builder.WriteString(fmt.Sprintf(markdownFrameworkFormat, bundle.Framework))
	}
	if bundle.Structure != utils.EmptyString {
		builder.WriteString(markdownStructureHeader)
		builder.WriteString(markdownStructureFence)
		builder.WriteString(fmt.Sprintf(markdownStructureRoot, bundle.ProjectName))
		builder.WriteString(bundle.Structure)
		builder.WriteString(markdownFenceClose)
	}
	builder.WriteString(markdownContentsHeader)
	for _, file := range bundle.Files {
		builder.WriteString(fmt.Sprintf(markdownFileFormat, file.RelativePath, utils.FenceLanguage(file.RelativePath), file.Content))
	}
	return builder.String()
}

// RenderXML renders bundle as an XML document rooted at <project_structure>.
// File contents are written as CDATA so source text stays verbatim.
func RenderXML(bundle types.Bundle) (string, error) {
	project := xmlProject{Name: bundle.ProjectName, Framework: bundle.Framework}
	if bundle.Structure != utils.EmptyString {
		project.Structure = &xmlCData{Text: bundle.Structure}
	}
	for _, file := range bundle.Files {
		project.Paths = append(project.Paths, file.RelativePath)
		project.Files = append(project.Files, xmlFile{Path: file.RelativePath, Content: file.Content})
	}
	encoded, xmlMarshalError := xml.MarshalIndent(project, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return utils.EmptyString, fmt.Errorf(xmlMarshalErrorFormat, xmlMarshalError)
	}
	return xmlHeader + string(encoded) + "\n", nil
}
