package main

import "github.com/frahmantamala/finance-app/cmd"

func main() {
	cmd.Execute()
}
