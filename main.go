package main

import "tour-booking/cmd"

func main() {
	cmd.Execute()
}
