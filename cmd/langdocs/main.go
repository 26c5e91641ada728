package main

import "github.com/MrSnakeDoc/langdocs/internal/cli"

func main() {
	cli.Execute()
}
