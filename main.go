package main

import "github.com/emrgen/bookbrainz/cmd"

func main() {
	cmd.Execute()
}
