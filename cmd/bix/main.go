package main

import "github.com/arloliu/bix/cmd/bix/cmd"

func main() {
	cmd.Execute()
}
