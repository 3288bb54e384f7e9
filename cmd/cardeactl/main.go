package main

import "github.com/gauciv/cardea/cmd/cardeactl/cmd"

func main() {
	cmd.Execute()
}
