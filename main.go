package main

import "github.com/KaramelBytes/sheetcheck/cmd"

func main() {
	cmd.Execute()
}
