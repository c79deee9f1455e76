package main

import (
	"github.com/bunjo05/volunteer-faster/storage/database"
)

var runMigrationFunc = database.RunMigration // mockable

func (cli *commandLine) migrate(args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}
	return runMigrationFunc(command, cli.db, args...)
}
