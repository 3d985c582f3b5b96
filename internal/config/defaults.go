package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSubmissionPath is where submissions are looked for, relative to the project
	DefaultSubmissionPath = "."
	// DefaultTopic is the topic graded when none is named
	DefaultTopic = "dll"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "grades.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".csp"
	// DefaultProcessors is the default number of parallel graders
	DefaultProcessors = 4
	// DefaultTimeout bounds one submission's corpus run
	DefaultTimeout = 10 * time.Second
	// ConfigFileName is the project config file, looked up from the project path upwards
	ConfigFileName = ".csp.yaml"
	// maxConfigDepth limits the upward search for ConfigFileName
	maxConfigDepth = 10
)

// Database defaults used when neither the config file nor the environment set them
const (
	DefaultDBHost = "127.0.0.1"
	DefaultDBPort = "3306"
	DefaultDBUser = "root"
	DefaultDBName = "csplay"
)

// DefaultPathsToIgnore are the default directories to skip when scanning for submissions
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	DefaultOutputJSONDir,
}
