// Command multidist runs the MultiDist distortion outside a DAW: render
// files offline, measure a test tone, or play a file live with a terminal
// control surface.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/redetach/multidist/pkg/framework/debug"
	"github.com/redetach/multidist/pkg/multidist"
)

var (
	logLevel = flag.String("v", "info", "Log level: debug, info, warn, error, off")
	logFile  = flag.String("log", "", "Log file path (default: stderr)")
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var commands = []command{
	{"render", "process an audio file into a WAV file", runRender},
	{"analyze", "measure level and distortion of a test tone", runAnalyze},
	{"play", "play an audio file through the plugin with live controls", runPlay},
	{"info", "print plugin, class and parameter information", runInfo},
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: multidist [flags] <command> [command flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(out, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	closer, err := setupLogging(*logLevel, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closer != nil {
		defer closer.Close()
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	multidist.Register()

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(args); err != nil {
			debug.Error("%s: %v", name, err)
			if closer != nil {
				closer.Close()
			}
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func setupLogging(level, file string) (io.Closer, error) {
	l, err := debug.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var closer io.Closer
	if file != "" {
		logger, c, err := debug.NewFileLogger(file, "multidist", debug.DefaultFlags)
		if err != nil {
			return nil, err
		}
		debug.SetDefault(logger)
		closer = c
	}

	debug.SetLevel(l)
	return closer, nil
}
