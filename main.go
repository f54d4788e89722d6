package main

import "github.com/yeremiapane/restaurant-reservations/cmd"

func main() {
	cmd.Execute()
}
