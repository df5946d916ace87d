package main

import "github.com/papapumpkin/rota/cmd"

func main() {
	cmd.Execute()
}
