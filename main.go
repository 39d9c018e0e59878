package main

import "polyglot-blog-be/cli"

func main() {
	cli.Execute()
}
