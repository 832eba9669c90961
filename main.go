package main

import "github.com/vanagroupofficial-ai/VANACLONE/cmd"

func main() {
	cmd.Execute()
}
