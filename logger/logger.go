package logger

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

const calldepth = 3

var (
	Silent  bool
	Verbose bool
	Color   bool

	stdOutLogger     = log.New(os.Stdout, "", 0)
	stdOutWarnLogger = log.New(os.Stdout, "WARNING: ", 0)
	stdErrLogger     = log.New(os.Stderr, "ERROR: ", 0)
)

func Error(v ...interface{}) {
	output(stdErrLogger, ColorRed, fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	output(stdErrLogger, ColorRed, fmt.Sprintf(format, v...))
}

func Warn(v ...interface{}) {
	output(stdOutWarnLogger, ColorLightRed, fmt.Sprint(v...))
}

func Warnf(format string, v ...interface{}) {
	output(stdOutWarnLogger, ColorLightRed, fmt.Sprintf(format, v...))
}

func Heading(v ...interface{}) {
	if !Silent {
		output(stdOutLogger, ColorGreen, fmt.Sprint(v...))
	}
}

func Headingf(format string, v ...interface{}) {
	if !Silent {
		output(stdOutLogger, ColorGreen, fmt.Sprintf(format, v...))
	}
}

func Info(v ...interface{}) {
	if !Silent {
		output(stdOutLogger, ColorCyan, fmt.Sprint(v...))
	}
}

func Infof(format string, v ...interface{}) {
	if !Silent {
		output(stdOutLogger, ColorCyan, fmt.Sprintf(format, v...))
	}
}

func Debug(v ...interface{}) {
	if Verbose && !Silent {
		output(stdOutLogger, ColorLightGrey, fmt.Sprint(v...))
	}
}

func Debugf(format string, v ...interface{}) {
	if Verbose && !Silent {
		output(stdOutLogger, ColorLightGrey, fmt.Sprintf(format, v...))
	}
}

func output(l *log.Logger, color string, msg string) {
	if Color {
		msg = colorize(color, msg)
	}
	l.Output(calldepth, msg)
}

// colorize wraps the message in the given ANSI color, keeping any trailing
// whitespace outside of the colored region so terminals don't paint it.
func colorize(color, s string) string {
	whitespace := regexp.MustCompile(`\s*$`)
	trimmed := whitespace.ReplaceAllString(s, "")
	trailing := whitespace.FindString(s)

	return color + trimmed + ColorNC + trailing
}
