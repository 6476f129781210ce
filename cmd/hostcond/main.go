package main

import "github.com/NVIDIA/hostcond/pkg/cli"

func main() {
	cli.Execute()
}
