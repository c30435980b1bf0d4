package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/bitrise-io/go-steputils/stepconf"
	"github.com/bitrise-io/go-steputils/tools"
	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-xcresult-report/annotation"
	"github.com/bitrise-steplib/steps-xcresult-report/report"
	"github.com/bitrise-steplib/steps-xcresult-report/test/testreport"
	"github.com/bitrise-steplib/steps-xcresult-report/xcresult"
	"github.com/bitrise-steplib/steps-xcresult-report/xcresult/xcresulttool"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// Config ...
type Config struct {
	XcresultPath    string `env:"xcresult_path,required"`
	RepositoryRoot  string `env:"repository_root"`
	ReportPath      string `env:"report_path"`
	ReportFormat    string `env:"report_format,opt[json,yaml]"`
	JUnitReportPath string `env:"junit_report_path"`
	Annotations     bool   `env:"annotations,opt[true,false]"`
	DebugMode       bool   `env:"debug_mode,opt[true,false]"`
}

// Exported environment variables
const (
	buildStatusKey          = "XCRESULT_BUILD_STATUS"
	buildErrorCountKey      = "XCRESULT_BUILD_ERROR_COUNT"
	buildWarningCountKey    = "XCRESULT_BUILD_WARNING_COUNT"
	testTotalCountKey       = "XCRESULT_TEST_TOTAL_COUNT"
	testPassedCountKey      = "XCRESULT_TEST_PASSED_COUNT"
	testFailedCountKey      = "XCRESULT_TEST_FAILED_COUNT"
	testSkippedCountKey     = "XCRESULT_TEST_SKIPPED_COUNT"
	testExpectedFailuresKey = "XCRESULT_TEST_EXPECTED_FAILURE_COUNT"
)

func fail(logger log.Logger, format string, v ...interface{}) {
	logger.Errorf(format, v...)
	os.Exit(1)
}

func main() {
	logger := log.NewLogger()

	var config Config
	if err := stepconf.Parse(&config); err != nil {
		fail(logger, "Issue with input: %s", err)
	}

	stepconf.Print(config)
	logger.Println()
	logger.EnableDebugLog(config.DebugMode)

	config, err := resolvePaths(config, pathutil.NewPathModifier())
	if err != nil {
		fail(logger, "%s", err)
	}

	tool := xcresulttool.New(command.NewFactory(env.NewRepository()), logger)
	logToolInfo(tool, config.XcresultPath, logger)

	logger.Println()
	logger.Infof("Parsing %s", config.XcresultPath)

	parser := xcresult.NewParser(config.XcresultPath, tool, pathutil.NewPathChecker(), logger)
	result, err := parser.Parse()
	if err != nil {
		fail(logger, "%s", err)
	}

	printBuildResults(result.BuildResults, logger)
	printTestResults(result.TestResults, logger)

	if config.Annotations {
		printAnnotations(result, config.RepositoryRoot, logger)
	}

	logger.Println()
	logger.Infof("Exporting outputs")
	if err := exportOutputs(outputs(result), logger); err != nil {
		fail(logger, "%s", err)
	}

	if err := writeReports(config, result, logger); err != nil {
		fail(logger, "%s", err)
	}

	logger.Println()
	logger.Donef("Success")
}

func resolvePaths(config Config, pathModifier pathutil.PathModifier) (Config, error) {
	paths := map[string]*string{
		"xcresult_path":     &config.XcresultPath,
		"repository_root":   &config.RepositoryRoot,
		"report_path":       &config.ReportPath,
		"junit_report_path": &config.JUnitReportPath,
	}

	for input, pth := range paths {
		if *pth == "" {
			continue
		}

		absPth, err := pathModifier.AbsPath(*pth)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to expand %s (%s)", input, *pth)
		}
		*pth = absPth
	}

	return config, nil
}

func logToolInfo(tool xcresulttool.Tool, bundlePath string, logger log.Logger) {
	if !tool.IsAvailable() {
		logger.Warnf("xcresulttool is not available, the bundle can not be read")
		return
	}

	if version, err := tool.Version(); err != nil {
		logger.Warnf("Failed to get xcresulttool version: %s", err)
	} else {
		logger.Printf("xcresulttool version: %d", version)
	}

	if version, err := xcresulttool.DocumentMajorVersion(bundlePath); err != nil {
		logger.Debugf("Failed to read the document version of %s: %s", bundlePath, err)
	} else if version < xcresulttool.MinDocumentMajorVersion {
		logger.Warnf("xcresult document version %d is not supported, the minimum is %d", version, xcresulttool.MinDocumentMajorVersion)
	} else {
		logger.Debugf("xcresult document version: %d", version)
	}
}

func printBuildResults(results *xcresult.BuildResults, logger log.Logger) {
	logger.Println()
	if results == nil {
		logger.Warnf("No build results found")
		return
	}

	logger.Infof("Build results")
	logger.Printf("- action: %s", results.ActionTitle)
	logger.Printf("- status: %s", results.Status)
	logger.Printf("- errors: %d", results.ErrorCount)
	logger.Printf("- warnings: %d", results.WarningCount)
	logger.Printf("- analyzer warnings: %d", results.AnalyzerWarningCount)
	logger.Debugf("%# v", pretty.Formatter(*results))
}

func printTestResults(results *xcresult.TestResults, logger log.Logger) {
	logger.Println()
	if results == nil {
		logger.Warnf("No test results found")
		return
	}

	summary := results.Summary()
	logger.Infof("Test results")
	logger.Printf("- total: %d", summary.TotalCount)
	logger.Printf("- passed: %d", summary.PassedCount)
	logger.Printf("- failed: %d", summary.FailedCount)
	logger.Printf("- skipped: %d", summary.SkippedCount)
	logger.Printf("- expected failures: %d", summary.ExpectedFailureCount)

	for _, device := range results.Devices {
		logger.Printf("- device: %s (%s %s)", device.DeviceName, device.Platform, device.OSVersion)
	}

	failures := results.Failures()
	if len(failures) > 0 {
		logger.Println()
		logger.Errorf("Failures (%d):", len(failures))
		for _, failure := range failures {
			logger.Printf("- %s.%s: %s", failure.TestClass, failure.TestName, failure.Message)
		}
	}
}

func printAnnotations(result xcresult.Result, repositoryRoot string, logger log.Logger) {
	var annotations []annotation.Annotation
	if result.BuildResults != nil {
		annotations = append(annotations, annotation.FromBuildResults(*result.BuildResults, repositoryRoot)...)
	}
	if result.TestResults != nil {
		annotations = append(annotations, annotation.FromTestFailures(result.TestResults.Failures(), repositoryRoot)...)
	}

	if len(annotations) == 0 {
		return
	}

	logger.Println()
	for _, a := range annotations {
		logger.Printf("%s", a)
	}
}

func outputs(result xcresult.Result) map[string]string {
	envs := map[string]string{}

	if build := result.BuildResults; build != nil {
		envs[buildStatusKey] = build.Status
		envs[buildErrorCountKey] = fmt.Sprint(build.ErrorCount)
		envs[buildWarningCountKey] = fmt.Sprint(build.WarningCount)
	}

	if result.TestResults != nil {
		summary := result.TestResults.Summary()
		envs[testTotalCountKey] = fmt.Sprint(summary.TotalCount)
		envs[testPassedCountKey] = fmt.Sprint(summary.PassedCount)
		envs[testFailedCountKey] = fmt.Sprint(summary.FailedCount)
		envs[testSkippedCountKey] = fmt.Sprint(summary.SkippedCount)
		envs[testExpectedFailuresKey] = fmt.Sprint(summary.ExpectedFailureCount)
	}

	return envs
}

func exportOutputs(envs map[string]string, logger log.Logger) error {
	keys := make([]string, 0, len(envs))
	for key := range envs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := tools.ExportEnvironmentWithEnvman(key, envs[key]); err != nil {
			return errors.Wrapf(err, "failed to export %s", key)
		}
		logger.Printf("- %s: %s", key, envs[key])
	}

	return nil
}

func writeReports(config Config, result xcresult.Result, logger log.Logger) error {
	if config.ReportPath != "" {
		format := report.Format(config.ReportFormat)
		if format == "" {
			format = report.FormatJSON
		}

		data, err := report.New(result, config.RepositoryRoot).Marshal(format)
		if err != nil {
			return errors.Wrap(err, "failed to create report")
		}
		if err := fileutil.WriteBytesToFile(config.ReportPath, data); err != nil {
			return errors.Wrapf(err, "failed to write report to %s", config.ReportPath)
		}
		logger.Donef("Report written to %s", config.ReportPath)
	}

	if config.JUnitReportPath != "" {
		if result.TestResults == nil {
			logger.Warnf("No test results found, skipping the JUnit report")
			return nil
		}

		data, err := testreport.Convert(*result.TestResults).XML()
		if err != nil {
			return errors.Wrap(err, "failed to create JUnit report")
		}
		if err := fileutil.WriteBytesToFile(config.JUnitReportPath, data); err != nil {
			return errors.Wrapf(err, "failed to write JUnit report to %s", config.JUnitReportPath)
		}
		logger.Donef("JUnit report written to %s", config.JUnitReportPath)
	}

	return nil
}
