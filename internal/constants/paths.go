package constants

// Log file names and rotation settings.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.teamcal/logs/teamcal.log
	CLILogFileName = "teamcal.log"

	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated file.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Supported task input file extensions.
const (
	// ExtJSON is the extension for JSON task exports.
	ExtJSON = ".json"

	// ExtYAML and ExtYML are the extensions for YAML task files.
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
)
