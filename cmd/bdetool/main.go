// File: cmd/bdetool/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"bdetool/pkg/console"
	"bdetool/pkg/eweb"
	"bdetool/pkg/profile"
	"bdetool/pkg/session"
)

const version = "1.0.0"

func main() {
	opts := parseFlags()
	if opts.showHelp {
		printHelp()
		return
	}
	if opts.showVersion {
		fmt.Printf("bdetool v%s\n", version)
		return
	}

	prof := profile.Default()
	if opts.profile != "" {
		p, err := profile.Load(opts.profile)
		if err != nil {
			fmt.Printf(">> FATAL: Could not load profile: %v\n", err)
			os.Exit(1)
		}
		prof = p
	}
	if flag.NArg() > 0 {
		prof.Address = flag.Arg(0)
	}

	log := newLogger(opts.debug || prof.Debug)

	fmt.Println()
	fmt.Printf("bdetool v%s\n", version)
	fmt.Println("  Creates a BDE object on an enteliWEB controller.")
	fmt.Println()

	con := console.New(os.Stdin, os.Stdout)
	s := session.New(con, session.Config{
		Defaults: eweb.Credentials{Address: prof.Address, Username: prof.Username},
		Dial: func(creds eweb.Credentials) session.Gateway {
			return eweb.NewClient(creds, eweb.Options{
				Scheme:             prof.Scheme,
				Timeout:            prof.Timeout,
				InsecureSkipVerify: prof.InsecureSkipVerify,
				Log:                log,
			})
		},
		Log: log,
	})
	if err := s.Run(context.Background()); err != nil {
		fmt.Printf(">> FATAL: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Exiting bdetool ---")
}

// --- Flag Parsing and Help Functions ---

type options struct {
	showHelp    bool
	showVersion bool
	debug       bool
	profile     string
}

func parseFlags() *options {
	opts := &options{}
	flag.BoolVarP(&opts.showHelp, "help", "h", false, "Show help message")
	flag.BoolVarP(&opts.showVersion, "version", "v", false, "Show version")
	flag.BoolVar(&opts.debug, "debug", false, "Log requests and state changes to stderr")
	flag.StringVarP(&opts.profile, "profile", "f", "", "Use YAML profile file or profile name")
	flag.Usage = printHelp
	flag.Parse()
	return opts
}

func printHelp() {
	fmt.Println("\n  syntax: bdetool [-h] [-v] [--debug] [-f <profile>] [address]")
	fmt.Println("\n    -h, --help    : Show this help message.")
	fmt.Println("    -v, --version : Show version.")
	fmt.Println("    --debug       : Log requests and state changes to stderr.")
	fmt.Println("    -f, --profile : Use YAML profile file or profile name.")
	fmt.Println("    address       : enteliWEB server address (default localhost).")
	fmt.Println()
}

func newLogger(debug bool) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log.WithField("app", "bdetool")
}
