package main

import "cursorhist/internal/cli"

func main() {
	cli.Execute()
}
