// Package structure renders a collected file list as a nested tree.
package structure

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/devassist/internal/utils"
)

const (
	markdownIndent       = "  "
	markdownBullet       = "- "
	directoryIndicator   = "/"
	lineBreak            = "\n"
	treeBranchConnector  = "├── "
	treeLastConnector    = "└── "
	treeBranchExtension  = "│   "
	treeLastExtension    = "    "
	parentDirectoryToken = ".."
)

// Node is one entry of the rendered tree. The root node has an empty name.
type Node struct {
	Name        string
	IsDirectory bool
	Children    []*Node
}

type buildNode struct {
	isDirectory bool
	children    map[string]*buildNode
}

// Build constructs the tree for filePaths relative to rootDirectory. Relative
// inputs are used as given; absolute inputs are made relative to rootDirectory.
// Children are ordered directories first, then by byte-wise name comparison,
// so every permutation of the input produces the same tree.
func Build(filePaths []string, rootDirectory string) *Node {
	root := &buildNode{isDirectory: true, children: map[string]*buildNode{}}
	for _, filePath := range filePaths {
		segments := pathSegments(filePath, rootDirectory)
		current := root
		for index, segment := range segments {
			isLast := index == len(segments)-1
			child, exists := current.children[segment]
			if !exists {
				child = &buildNode{isDirectory: !isLast, children: map[string]*buildNode{}}
				current.children[segment] = child
			} else if !isLast {
				child.isDirectory = true
			}
			current = child
		}
	}
	return freeze(utils.EmptyString, root)
}

// Render returns the markdown nested-list form: "- name" for files and
// "- name/" for directories, indented two spaces per level.
func Render(filePaths []string, rootDirectory string) string {
	var builder strings.Builder
	writeMarkdown(&builder, Build(filePaths, rootDirectory), 0)
	return builder.String()
}

// RenderTree returns the box-drawing form of the tree.
func RenderTree(filePaths []string, rootDirectory string) string {
	var lines []string
	collectTreeLines(&lines, Build(filePaths, rootDirectory), utils.EmptyString)
	if len(lines) == 0 {
		return utils.EmptyString
	}
	return strings.Join(lines, lineBreak) + lineBreak
}

func writeMarkdown(builder *strings.Builder, node *Node, depth int) {
	for _, child := range node.Children {
		builder.WriteString(strings.Repeat(markdownIndent, depth))
		builder.WriteString(markdownBullet)
		builder.WriteString(child.Name)
		if child.IsDirectory {
			builder.WriteString(directoryIndicator)
			builder.WriteString(lineBreak)
			writeMarkdown(builder, child, depth+1)
			continue
		}
		builder.WriteString(lineBreak)
	}
}

func collectTreeLines(lines *[]string, node *Node, prefix string) {
	for index, child := range node.Children {
		connector := treeBranchConnector
		extension := treeBranchExtension
		if index == len(node.Children)-1 {
			connector = treeLastConnector
			extension = treeLastExtension
		}
		name := child.Name
		if child.IsDirectory {
			name += directoryIndicator
		}
		*lines = append(*lines, prefix+connector+name)
		if child.IsDirectory {
			collectTreeLines(lines, child, prefix+extension)
		}
	}
}

func freeze(name string, source *buildNode) *Node {
	node := &Node{Name: name, IsDirectory: source.isDirectory}
	if len(source.children) == 0 {
		return node
	}
	node.Children = make([]*Node, 0, len(source.children))
	for childName, child := range source.children {
		node.Children = append(node.Children, freeze(childName, child))
	}
	sort.Slice(node.Children, func(first, second int) bool {
		left, right := node.Children[first], node.Children[second]
		if left.IsDirectory != right.IsDirectory {
			return left.IsDirectory
		}
		return left.Name < right.Name
	})
	return node
}

func pathSegments(filePath string, rootDirectory string) []string {
	relativePath := utils.ToPosixPath(filePath)
	if filepath.IsAbs(filePath) {
		if computed, relativeError := utils.ToPosixRelative(rootDirectory, filePath); relativeError == nil && !strings.HasPrefix(computed, parentDirectoryToken) {
			relativePath = computed
		}
	}
	var segments []string
	for _, segment := range strings.Split(relativePath, utils.PathSeparator) {
		if segment == utils.EmptyString || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}
