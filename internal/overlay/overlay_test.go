package overlay_test

import (
	"reflect"
	"testing"

	"github.com/temirov/devassist/internal/overlay"
)

func TestMatches(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		path     string
		pattern  string
		expected bool
	}{
		{testName: "exact equality", path: "src/app.js", pattern: "src/app.js", expected: true},
		{testName: "directory prefix", path: "src/components/App.jsx", pattern: "src", expected: true},
		{testName: "prefix requires separator", path: "srcs/app.js", pattern: "src", expected: false},
		{testName: "glob in directory", path: "src/app.js", pattern: "src/*.js", expected: true},
		{testName: "glob does not cross separators", path: "src/lib/app.js", pattern: "src/*.js", expected: false},
		{testName: "slash-free glob matches base name", path: "src/lib/app.test.js", pattern: "*.test.js", expected: true},
		{testName: "glob naming a directory covers its children", path: "src/components/App.jsx", pattern: "src/comp*", expected: true},
		{testName: "recursive wildcard", path: "src/a/b/c.ts", pattern: "src/**/*.ts", expected: true},
		{testName: "recursive wildcard at top level", path: "src/c.ts", pattern: "src/**/*.ts", expected: true},
		{testName: "dot slash prefix and trailing slash", path: "./docs/guide.md", pattern: "./docs/", expected: true},
		{testName: "backslashes normalized", path: `src\app.js`, pattern: `src\app.js`, expected: true},
		{testName: "malformed glob never matches", path: "src/app.js", pattern: "src/[", expected: false},
		{testName: "empty pattern never matches", path: "src/app.js", pattern: "", expected: false},
	}
	for index, testCase := range testCases {
		actual := overlay.Matches(testCase.path, testCase.pattern)
		if actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expected, actual)
		}
	}
}

func TestPatternSetAllows(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		include  []string
		exclude  []string
		path     string
		expected bool
	}{
		{testName: "no patterns allow everything", path: "any/file.js", expected: true},
		{testName: "include restricts", include: []string{"src"}, path: "lib/file.js", expected: false},
		{testName: "include admits", include: []string{"src"}, path: "src/file.js", expected: true},
		{testName: "exclude without include", exclude: []string{"*.test.js"}, path: "src/a.test.js", expected: false},
		{testName: "exclude wins over include", include: []string{"src"}, exclude: []string{"src/legacy"}, path: "src/legacy/old.js", expected: false},
		{testName: "exclude wins for identical patterns", include: []string{"src/app.js"}, exclude: []string{"src/app.js"}, path: "src/app.js", expected: false},
	}
	for index, testCase := range testCases {
		patternSet := overlay.NewPatternSet(testCase.include, testCase.exclude)
		if actual := patternSet.Allows(testCase.path); actual != testCase.expected {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expected, actual)
		}
	}
}

func TestNewPatternSetNormalizes(testingInstance *testing.T) {
	patternSet := overlay.NewPatternSet([]string{"./src/", "", "src", `lib\util`}, nil)
	expected := []string{"src", "lib/util"}
	if !reflect.DeepEqual(patternSet.Include(), expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, patternSet.Include())
	}
	if !overlay.NewPatternSet(nil, nil).Empty() {
		testingInstance.Fatalf("expected empty pattern set")
	}
}

func TestParseList(testingInstance *testing.T) {
	actual := overlay.ParseList("src, lib ,,*.test.js")
	expected := []string{"src", "lib", "*.test.js"}
	if !reflect.DeepEqual(actual, expected) {
		testingInstance.Fatalf("expected %v, got %v", expected, actual)
	}
	if overlay.ParseList("  ") != nil {
		testingInstance.Fatalf("expected nil for a blank list")
	}
}
