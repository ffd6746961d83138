package commands

import (
	"flag"
	"fmt"

	"go.uber.org/zap"
)

const APP = "uhppoted-app-usercheck"

type Options struct {
	Debug bool
}

var logger = zap.NewNop()

// SetLogger sets the logger used by the commands and the Google Drive client.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-16s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --debug            Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}

func infof(format string, args ...any) {
	logger.Sugar().Infof(format, args...)
}

func warnf(format string, args ...any) {
	logger.Sugar().Warnf(format, args...)
}
