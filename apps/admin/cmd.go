package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sql.DB
	usrRepo user.Repository
	prjRepo project.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|down|status                                 - run database migrations")
	fmt.Println("  adduser -email EMAIL -name NAME [-admin]               - update or create a user")
	fmt.Println("  addorg -name NAME -country COUNTRY                     - create a host organization")
	fmt.Println("  addproject -org ORG_ID -name NAME -country COUNTRY -fee CENTS")
	fmt.Println("                                                         - publish a project")
	fmt.Println("  resetpassword -email EMAIL                             - reset user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant all roles to the user.")

	addOrgCmd := flag.NewFlagSet("addorg", flag.ExitOnError)
	addOrgName := addOrgCmd.String("name", "", "The organization's name.")
	addOrgCountry := addOrgCmd.String("country", "", "The organization's country.")

	addProjectCmd := flag.NewFlagSet("addproject", flag.ExitOnError)
	addProjectOrg := addProjectCmd.String("org", "", "The owning organization's ID.")
	addProjectName := addProjectCmd.String("name", "", "The project's name.")
	addProjectCountry := addProjectCmd.String("country", "", "The project's country.")
	addProjectFee := addProjectCmd.Int64("fee", 0, "The daily project fee in cents.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserEmail, pwd, *addUserAdmin)
	case "addorg":
		if err := addOrgCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addOrgName == "" || *addOrgCountry == "" {
			addOrgCmd.Usage()
			return errHelp
		}
		return cli.addOrganization(*addOrgName, *addOrgCountry)
	case "addproject":
		if err := addProjectCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addProjectOrg == "" || *addProjectName == "" || *addProjectCountry == "" {
			addProjectCmd.Usage()
			return errHelp
		}
		return cli.addProject(*addProjectOrg, *addProjectName, *addProjectCountry, *addProjectFee)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
