package main

import "github.com/staffdesk/workforce-console/cmd"

func main() {
	cmd.Execute()
}
