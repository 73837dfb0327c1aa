package utils

const (
	// EmptyString represents a reusable empty string constant.
	EmptyString = ""
	// ConfigFileName is the name of the project-level configuration override file.
	ConfigFileName = ".aiconfig.json"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PathSeparator is the separator used by every relative path handed to matchers.
	PathSeparator = "/"
)

const (
	// LoggerInitializationFailedMessageFormat reports logger construction failures.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "devassist failed"
)
