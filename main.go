package main

import "github.com/rasiler/academy-graphql1/cmd"

func main() {
	cmd.Execute()
}
