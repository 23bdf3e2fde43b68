//go:build !windows

package main

import (
	"os"
)

func defaultJournalName() string {
	return os.Getenv("HOME") + "/.slashstrip_journal"
}
