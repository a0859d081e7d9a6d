package main

import "github.com/frahmantamala/helpdesk-inventory/cmd"

func main() {
	cmd.Execute()
}
