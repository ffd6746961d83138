package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/uhppoted-app-usercheck/commands"
)

var cli = []lib.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.CheckCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	logger, err := newLogger(options.Debug)
	if err != nil {
		fmt.Printf("\nError initialising logger: %v\n\n", err)
		os.Exit(1)
	}

	defer logger.Sync()

	commands.SetLogger(logger)

	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		logger.Error(err.Error())
		logger.Sync()
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true
	config.DisableCaller = !debug
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return config.Build()
}
