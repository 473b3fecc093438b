package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/haatos/simple-lms/internal"
	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/settings"
	"github.com/haatos/simple-lms/internal/store"
	"golang.org/x/term"
)

const usage = `usage: lmsctl <command> [flags]

commands:
  migrate         apply database migrations
  hash-password   read a password from the terminal and print its bcrypt hash
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	settings.ReadDotenv(internal.DotEnvPath)
	settings.Settings = settings.NewSettings()

	var err error
	switch os.Args[1] {
	case "migrate":
		err = migrate(os.Args[2:])
	case "hash-password":
		err = hashPassword(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "lmsctl:", err)
		os.Exit(1)
	}
}

func migrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	driver := fs.String("driver", settings.Settings.DBDriver, "database driver (sqlite or postgres)")
	fs.Parse(args)

	settings.Settings.DBDriver = *driver
	db := store.InitDatabase(settings.Settings, false)
	defer db.Close()
	if err := store.RunMigrations(db, *driver); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}

func hashPassword(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	cost := fs.Int("cost", 12, "bcrypt cost")
	fs.Parse(args)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("empty password")
	}

	hash, err := security.NewBcryptHasher(*cost).Hash(string(password))
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
