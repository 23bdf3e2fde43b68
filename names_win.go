//go:build windows

package main

import "os/user"

func defaultJournalName() string {
	usr, err := user.Current()
	if err != nil {
		panic(err)
	}
	return usr.HomeDir + "/slashstrip_journal"
}
