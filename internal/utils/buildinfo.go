package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion          = "unknown"
	develModuleVersion      = "(devel)"
	vcsRevisionSettingKey   = "vcs.revision"
	vcsModifiedSettingKey   = "vcs.modified"
	shortRevisionLength     = 12
	modifiedRevisionSuffix  = "-dirty"
	gitExecutableName       = "git"
	gitDescribeSubcommand   = "describe"
	gitDescribeTagsArgument = "--tags"
)

// Version is set at link time with -ldflags "-X github.com/temirov/devassist/internal/utils.Version=v1.2.3".
var Version = EmptyString

var gitDescribeArgumentSets = [][]string{
	{gitDescribeSubcommand, gitDescribeTagsArgument, "--exact-match"},
	{gitDescribeSubcommand, gitDescribeTagsArgument, "--long", "--dirty"},
}

// GetApplicationVersion reports the linked version, then the module version,
// then a git description of the working tree, then the embedded VCS revision.
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develModuleVersion {
		return buildInfo.Main.Version
	}
	if description := describeWorkingTree(); description != EmptyString {
		return description
	}
	if buildInfoAvailable {
		if revision := embeddedRevision(buildInfo); revision != EmptyString {
			return revision
		}
	}
	return unknownVersion
}

func describeWorkingTree() string {
	for _, arguments := range gitDescribeArgumentSets {
		// #nosec G204
		describeOutput, describeError := exec.Command(gitExecutableName, arguments...).Output()
		if describeError != nil {
			continue
		}
		if description := strings.TrimSpace(string(describeOutput)); description != EmptyString {
			return description
		}
	}
	return EmptyString
}

func embeddedRevision(buildInfo *debug.BuildInfo) string {
	revision := EmptyString
	modified := false
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSettingKey:
			revision = setting.Value
		case vcsModifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if revision != EmptyString && modified {
		revision += modifiedRevisionSuffix
	}
	return revision
}
