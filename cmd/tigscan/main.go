package main

import "github.com/vietddude/tigscan/internal/cli"

func main() {
	cli.Execute()
}
