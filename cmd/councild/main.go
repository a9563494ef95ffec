package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/ledger"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".councild")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("councild")
	fmt.Println("          Council revenue ledger")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Load the genesis file into a new ledger")
	fmt.Println("exec      Apply a batch of messages")
	fmt.Println("query     Print the ledger state")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.councild")

Settings are read from <home>/config.yaml and can be overridden with
COUNCIL_HEIGHT, COUNCIL_LOG_LEVEL and COUNCIL_DB_NAME.`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	conf, err := loadConfig(*varHome)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(os.Stderr, conf)
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = InitCmd(logger, conf, rest, os.Stdout)
	case "exec":
		err = ExecCmd(logger, conf, rest, os.Stdout)
	case "query":
		err = QueryCmd(logger, conf, rest, os.Stdout)
	case "version":
		fmt.Println(ledger.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
