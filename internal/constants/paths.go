package constants

// Directory and file names used by gitflow.
const (
	// GitflowHome is the hidden directory in the user's home holding global config and logs.
	GitflowHome = ".gitflow"

	// LogsDir is the directory name under GitflowHome where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "gitflow.log"

	// GlobalConfigName is the name of the global configuration file inside GitflowHome.
	GlobalConfigName = "config.yaml"

	// ProjectConfigName is the name of the project configuration file at the repository root.
	ProjectConfigName = ".gitflow.yaml"

	// EnvPrefix is the prefix of environment variables overriding configuration.
	EnvPrefix = "GITFLOW"

	// HomeEnvVar overrides the location of GitflowHome.
	HomeEnvVar = "GITFLOW_HOME"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is the age after which rotated files are removed.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
