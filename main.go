package main

import "github.com/agency-portal/cmd"

func main() {
	cmd.Execute()
}
