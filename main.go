package main

import "lexicanum/internal/cli"

func main() {
	cli.Execute()
}
