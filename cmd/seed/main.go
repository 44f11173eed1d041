package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"crud-apps/internal/logger"
	"crud-apps/internal/storage"
)

var schemas = map[string]storage.Schema{
	"expenses": storage.ExpenseSchema,
	"booking":  storage.BookingSchema,
}

var defaultDBPaths = map[string]string{
	"expenses": "expenses.db",
	"booking":  "booking.db",
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(stderr)

	app := fs.String("app", "", "Application to seed: expenses or booking")
	dbPath := fs.String("db", "", "Path to database file (defaults to the app's database)")
	reset := fs.Bool("reset", false, "Drop all of the app's data before seeding")
	yes := fs.Bool("yes", false, "Do not ask for confirmation before a reset")

	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, ok := schemas[*app]
	if !ok {
		fmt.Fprintln(stdout, "Usage: seed -app <expenses|booking> [-db <db_path>] [-reset] [-yes]")
		fs.PrintDefaults()
		if *app == "" {
			return fmt.Errorf("missing required flags: app")
		}
		return fmt.Errorf("unknown app %q", *app)
	}

	// The environment overrides the default path but never an explicit -db.
	if *dbPath == "" {
		*dbPath = defaultDBPaths[*app]
		if path := os.Getenv("DB_PATH"); path != "" {
			*dbPath = path
		}
	}

	db, err := storage.NewDB(*dbPath, schema, logger.New("warn", "text"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if *reset {
		if !*yes {
			fmt.Fprintf(stdout, "Reset all %s data in %s? [y/N]: ", *app, *dbPath)
			answer, err := readLine(stdin, stdout)
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			fmt.Fprintln(stdout)
			if !confirmed(answer) {
				fmt.Fprintln(stdout, color.YellowString("Aborted, nothing changed"))
				return nil
			}
		}
		if err := db.Reset(ctx, schema); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		fmt.Fprintln(stdout, color.RedString("Removed all %s data from %s", *app, *dbPath))
	}

	var seeded bool
	switch schema {
	case storage.ExpenseSchema:
		seeded, err = db.SeedExpenses(ctx)
	case storage.BookingSchema:
		seeded, err = db.SeedBooking(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}

	if !seeded {
		fmt.Fprintln(stdout, color.YellowString("Database %s already has data, nothing seeded", *dbPath))
		return nil
	}
	fmt.Fprintln(stdout, color.GreenString("Seeded sample %s data into %s", *app, *dbPath))
	return nil
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func readLine(stdin io.Reader, stdout io.Writer) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return "", err
		}
		defer term.Restore(int(f.Fd()), state)

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{f, stdout}, "")
		return t.ReadLine()
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
