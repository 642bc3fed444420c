package main

import "github.com/jengzang/ev-dashboard-go/internal/cmd"

func main() {
	cmd.Execute()
}
