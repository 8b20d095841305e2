/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import "github.com/banklite/backoffice-gin/cmd"

func main() {
	cmd.Execute()
}
