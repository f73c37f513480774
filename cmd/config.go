package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

const (
	configBaseName   = "modpatch"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName     = "output"
	mainOutputFlagName = "main-output"
	resolutionFlagName = "resolution"
	moduleFlagName     = "module"

	runtimeFlagName     = "runtime"
	noOpensFlagName     = "no-opens"
	tableFlagName       = "table"
	interactiveFlagName = "interactive"

	outputConfigKey     = "output"
	mainOutputConfigKey = "main_output"
	resolutionConfigKey = "resolution"
	moduleConfigKey     = "module"
	sourcesConfigKey    = "sources"

	defaultOutputDir = "target/test-classes"

	envPrefix = "MODPATCH"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".modpatch.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(outputConfigKey, defaultOutputDir)
	viper.SetDefault(mainOutputConfigKey, "")
	viper.SetDefault(resolutionConfigKey, "")
	viper.SetDefault(moduleConfigKey, "")

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// sourceConfig is one entry of the sources list in modpatch.yaml.
type sourceConfig struct {
	Path    string `mapstructure:"path"`
	Module  string `mapstructure:"module"`
	Release string `mapstructure:"release"`
	Kind    string `mapstructure:"kind"`
}

// configuredSources builds source directories from the sources list, with
// output directories derived from the configured base output. A missing or
// empty list falls back to a single unnamed source root.
func configuredSources() ([]*m.SourceDirectory, error) {
	var entries []sourceConfig
	if err := viper.UnmarshalKey(sourcesConfigKey, &entries); err != nil {
		return nil, err
	}

	baseOutput := m.Path(viper.GetString(outputConfigKey))

	if len(entries) == 0 {
		return []*m.SourceDirectory{
			m.NewSourceDirectory("src/test/java", m.KindSource, "", m.NoRelease, baseOutput),
		}, nil
	}

	dirs := make([]*m.SourceDirectory, 0, len(entries))

	for i, entry := range entries {
		release, err := m.ParseRelease(entry.Release)
		if err != nil {
			return nil, fmt.Errorf("sources entry %d: %w", i, err)
		}

		kind := m.KindSource
		if strings.EqualFold(entry.Kind, "resource") {
			kind = m.KindOther
		}

		dirs = append(dirs, m.NewSourceDirectory(m.Path(entry.Path), kind, entry.Module, release, baseOutput))
	}

	return dirs, nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
