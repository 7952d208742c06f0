// Package main is the entry point for the Hijri users admin CLI.
// It seeds the store, prints users and converts dates from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prn-tf/hijri-users/internal/bootstrap"
	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/hijri"
	"github.com/prn-tf/hijri-users/internal/logging"
	"github.com/prn-tf/hijri-users/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var errUsage = errors.New("usage")

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	switch args[0] {
	case "version":
		fmt.Printf("Hijri Users Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		return
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	}

	if err := run(*configPath, args); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(configPath string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Logging.Output = "stderr"

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	return runCommand(ctx, app.UserService, args, os.Stdout, os.Stderr)
}

// runCommand executes a data command against svc.
func runCommand(ctx context.Context, svc *service.UserService, args []string, stdout, stderr io.Writer) error {
	switch args[0] {
	case "seed":
		out, err := svc.Seed(ctx, service.DefaultSeed)
		if err != nil {
			return err
		}
		if out.Skipped {
			fmt.Fprintln(stdout, "Users already present, nothing seeded")
			return nil
		}
		fmt.Fprintf(stdout, "Seeded %d users\n", out.Created)

	case "list":
		roster, err := svc.Roster(ctx)
		if err != nil {
			return err
		}
		for _, e := range roster.Entries {
			fmt.Fprintln(stdout, e.Line())
		}
		for _, s := range roster.Skipped {
			fmt.Fprintf(stderr, "skipped %s (id %d): %v\n", s.User.Name, s.User.ID, s.Err)
		}

	case "add":
		if len(args) != 3 {
			return errUsage
		}
		out, err := svc.Register(ctx, service.RegisterUserInput{Name: args[1], BirthDate: args[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created user %d: %s, %s\n", out.User.ID, out.User.Name, out.User.BirthDate)

	case "convert":
		if len(args) != 2 {
			return errUsage
		}
		out, err := svc.Convert(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s -> %s\n", out.Hijri, hijri.FormatISO(out.Gregorian))

	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		return errUsage
	}

	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Hijri Users Admin CLI

Usage:
  hijri-admin [-config path] <command> [arguments]

Commands:
  seed                    Load the demo users when the store is empty
  list                    Print every user as "name, YYYY-MM-DD"
  add <name> <date>       Register a user (date as yyyyMMdd or yyyy-MM-dd)
  convert <date>          Convert a Hijri date to Gregorian
  version                 Print version information
  help                    Show this help message

Examples:
  hijri-admin seed
  hijri-admin list
  hijri-admin add Ali 1438-01-02
  hijri-admin convert 14440116`)
}
