package main

import "os"

// @title        Pharmacy Inventory
// @version      1.0
// @description  Session-authenticated pharmacy inventory tracker.
// @BasePath     /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
