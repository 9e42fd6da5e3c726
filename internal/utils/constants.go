package utils

// Configuration file locations.
const (
	// ConfigFileName is the name of both the local and the global configuration file.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".treetext"
)

// Messages logged by the command entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal error of a failed run.
	ApplicationExecutionFailedMessage = "treetext failed"
)
