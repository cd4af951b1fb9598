package main

import (
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/mitchellh/cli"
	"github.com/sailhq/sailpost/assets"
	"github.com/sailhq/sailpost/cmd/api"
	"github.com/sailhq/sailpost/cmd/migrate"
)

func main() {
	const appVersion = "1.0.0"

	apiCmd := api.NewCmd(assets.ServiceName, appVersion)

	c := cli.NewCLI(assets.ServiceName, appVersion)
	c.Args = os.Args[1:]
	c.Autocomplete = true
	c.Commands = map[string]cli.CommandFactory{
		"":        apiCmd, // default command if no subcommand defined
		"api":     apiCmd,
		"migrate": migrate.NewCmd(),
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}
