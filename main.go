package main

import "github.com/Kariqs/chapaquente-api/cmd"

func main() {
	cmd.Execute()
}
