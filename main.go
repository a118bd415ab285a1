package main

import "foodgram-backend/cmd/cli"

func main() {
	cli.Execute()
}
