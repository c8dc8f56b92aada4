package main

import "timeclock/internal/app/server"

func main() {
	server.Run()
}
