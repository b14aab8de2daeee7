package main

import "gigflow/app"

func main() {
	app.Run()
}
