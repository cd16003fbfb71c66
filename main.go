package main

import "github.com/frahmantamala/cost-manager/cmd"

func main() {
	cmd.Execute()
}
