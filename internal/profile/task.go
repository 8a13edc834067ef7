package profile

import (
	"strconv"

	"github.com/koustreak/bootprofile/internal/errs"
)

// Task names a downstream consumer of the resolved configuration.
type Task string

const (
	TaskRun   Task = "run"
	TaskTest  Task = "test"
	TaskImage Task = "image"
)

// Tasks returns all known tasks in a stable order.
func Tasks() []Task {
	return []Task{TaskRun, TaskTest, TaskImage}
}

// ParseTask validates a task name.
func ParseTask(s string) (Task, error) {
	switch t := Task(s); t {
	case TaskRun, TaskTest, TaskImage:
		return t, nil
	}
	return "", errs.Newf(errs.ErrKindInvalidInput, "unknown task %q: use run, test or image", s)
}

// TaskProfile is the configuration one task receives.
type TaskProfile struct {
	Task        Task
	Properties  Configuration // system properties
	JVMArgs     []string
	Environment Configuration // process environment (image builder only)
}

const (
	springConfigLocation = "classpath:/application.yml"
	tomcatBaseDir        = "./build/tomcat"
	logPath              = "./build/log"
	datasourcePassword   = "p"
)

var (
	runProperties = map[string]string{
		"spring.profiles.default":    "dev",
		"spring.profiles.active":     "dev",
		"spring.output.ansi.enabled": "ALWAYS",
		"spring.config.location":     springConfigLocation,
		"server.tomcat.basedir":      tomcatBaseDir,
		"server.ssl.client-auth":     "NONE",
		"LOG_PATH":                   logPath,
		"APP_DB_PASSWORD":            datasourcePassword,
		"APPLICATION_LOGLEVEL":       "DEBUG",
		"REQUEST_RESPONSE_LOGLEVEL":  "TRACE",
		"HIBERNATE_LOGLEVEL":         "DEBUG",
		"spring.datasource.password": datasourcePassword,
	}

	testProperties = map[string]string{
		"db.host":                              "localhost",
		"javax.net.ssl.trustStore":             "./src/main/resources/truststore.p12",
		"javax.net.ssl.trustStorePassword":     "zimmermann",
		"junit.platform.output.capture.stdout": "true",
		"junit.platform.output.capture.stderr": "true",
		"spring.config.location":               springConfigLocation,
		"server.ssl.client-auth":               "NONE",
		"server.tomcat.basedir":                tomcatBaseDir,
		"LOG_PATH":                             logPath,
		"APPLICATION_LOGLEVEL":                 "DEBUG",
		"HIBERNATE_LOGLEVEL":                   "DEBUG",
		"spring.datasource.password":           datasourcePassword,
	}

	// The test runner talks plain HTTP/1.1 to the server under test.
	testTransport = map[string]string{
		KeySSLEnabled:   "false",
		KeyHTTP2Enabled: "false",
	}

	imageEnvironment = map[string]string{
		"BP_JVM_VERSION":               "19.0.1",
		"BPL_JVM_THREAD_COUNT":         "20",
		"BPE_DELIM_JAVA_TOOL_OPTIONS":  " ",
		"BPE_APPEND_JAVA_TOOL_OPTIONS": "--enable-preview",
	}

	previewArgs = []string{"--enable-preview"}
)

// ForTask narrows a resolved configuration to what task consumes and adds
// the task's fixed properties.
func ForTask(cfg Configuration, task Task) (TaskProfile, error) {
	switch task {
	case TaskRun:
		props := cfg.pick(append([]string{KeySSLEnabled, KeyHTTP2Enabled, KeyServerPort}, datasourceKeys...)...)
		return TaskProfile{
			Task:       task,
			Properties: NewConfiguration(runProperties).merge(props),
			JVMArgs:    append([]string(nil), previewArgs...),
		}, nil

	case TaskTest:
		props := cfg.pick(append([]string{KeyForkCount}, datasourceKeys...)...)
		return TaskProfile{
			Task:       task,
			Properties: NewConfiguration(testProperties).merge(props, testTransport),
			JVMArgs:    append([]string(nil), previewArgs...),
		}, nil

	case TaskImage:
		return TaskProfile{
			Task:        task,
			Properties:  NewConfiguration(cfg.pick(KeyImageName, KeyImageTags)),
			Environment: NewConfiguration(imageEnvironment),
		}, nil
	}

	return TaskProfile{}, errs.Newf(errs.ErrKindInvalidInput, "unknown task %q: use run, test or image", string(task))
}

// MaxParallelForks returns the fork count carried by a test profile, or
// DefaultFork when the profile has none.
func (tp TaskProfile) MaxParallelForks() int {
	return atoiOr(tp.Properties.Get(KeyForkCount), DefaultFork)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
