package main

import "github.com/Mohsinsiddi/yieldcli/cmd"

func main() {
	cmd.Execute()
}
