// Package main is the inventory admin command line.
package main

func main() {
	Execute()
}
