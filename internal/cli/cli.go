package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"triage/internal/daily"
	"triage/internal/dates"
	"triage/internal/inbox"
	"triage/internal/vault"
)

// Services bundles the workflow services the CLI operates on.
type Services struct {
	Inbox inbox.Service
	Daily daily.Service
}

// Run executes a CLI subcommand and returns the process exit code.
// Outcome notifications are printed by the services' stdout notifier;
// Run itself only prints listings and usage.
func Run(args []string, svc Services) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls":
		return runList(svc)
	case "next":
		return runNext(cmdArgs, svc)
	case "read":
		return runRead(cmdArgs, svc)
	case "snooze":
		return runSnooze(cmdArgs, svc)
	case "merge":
		return runMerge(cmdArgs, svc)
	case "import":
		return runImport(svc)
	case "move":
		return runMove(cmdArgs, svc)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return 1
	}
}

func runList(svc Services) int {
	notes, err := svc.Inbox.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Name() < notes[j].Name() })
	for _, n := range notes {
		fmt.Println(n.Name())
	}
	return 0
}

func runNext(args []string, svc Services) int {
	var current *vault.Note
	if len(args) > 0 {
		if n, ok := findInboxNote(svc, args[0]); ok {
			current = &n
		}
	}
	next, err := svc.Inbox.NextAfter(current)
	if err != nil {
		return 1
	}
	fmt.Println(next.Path)
	return 0
}

func runRead(args []string, svc Services) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: triage read <note>")
		return 1
	}
	note, ok := findInboxNote(svc, args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "No inbox note named %s\n", args[0])
		return 1
	}
	if _, err := svc.Inbox.MarkAsRead(note); err != nil {
		return 1
	}
	return 0
}

func runSnooze(args []string, svc Services) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: triage snooze <note>")
		return 1
	}
	note, ok := findInboxNote(svc, args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "No inbox note named %s\n", args[0])
		return 1
	}
	if _, err := svc.Inbox.Snooze(note); err != nil {
		return 1
	}
	return 0
}

func runMerge(args []string, svc Services) int {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: triage merge <new-name> <note> <note>...")
		return 1
	}
	name := args[0]
	var notes []vault.Note
	for _, arg := range args[1:] {
		note, ok := findInboxNote(svc, arg)
		if !ok {
			fmt.Fprintf(os.Stderr, "No inbox note named %s\n", arg)
			return 1
		}
		notes = append(notes, note)
	}
	merged, err := svc.Inbox.Merge(notes, name)
	if err != nil {
		return 1
	}
	fmt.Println(merged.Path)
	return 0
}

func runImport(svc Services) int {
	if err := svc.Daily.ImportToInbox(time.Now()); err != nil {
		return 1
	}
	return 0
}

func runMove(args []string, svc Services) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: triage move <note> <date-phrase>")
		return 1
	}
	note, ok := findInboxNote(svc, args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "No inbox note named %s\n", args[0])
		return 1
	}
	day, ok := dates.ParsePhrase(args[1], time.Now())
	if !ok {
		fmt.Fprintf(os.Stderr, "Cannot understand date phrase %q (try \"today\" or \"last friday\")\n", args[1])
		return 1
	}
	if err := svc.Daily.MoveToDaily(note, day); err != nil {
		return 1
	}
	return 0
}

// findInboxNote resolves a CLI argument to an inbox note by exact
// name, basename, or vault-relative path.
func findInboxNote(svc Services, arg string) (vault.Note, bool) {
	notes, err := svc.Inbox.List()
	if err != nil {
		return vault.Note{}, false
	}
	for _, n := range notes {
		if n.Name() == arg || n.Basename() == arg || n.Path == arg {
			return n, true
		}
	}
	return vault.Note{}, false
}

func printUsage() {
	fmt.Println(`triage - inbox triage for a markdown vault

Usage: triage [flags] [command] [arguments]

Commands:
  list                        List inbox notes
  next [current]              Print the next inbox note after current
  read <note>                 Mark an inbox note as read
  snooze <note>               Snooze an inbox note
  merge <name> <note>...      Merge two or more notes into a new one
  import                      Import today's daily note into the inbox
  move <note> <date-phrase>   Move an inbox note into a daily note

Flags:
  -v, --vault <dir>           Vault directory

Running triage without arguments launches the interactive TUI.`)
}
