// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command peakcalc runs the Peak Finance calculators from the terminal,
// without a server or database.
//
//	peakcalc emi --principal 100000 --rate 9 --months 60
//	peakcalc afford --income 75000 --debt 10000 --rate 9 --months 60
//	peakcalc payoff --principal 100000 --rate 12 --months 12 --extra 2000
//	peakcalc inflation --price 1000 --years 5
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
