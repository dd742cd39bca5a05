// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package compliance holds the disclaimers attached to every calculator
// response and the gate for features that need a licensed partner.
package compliance
