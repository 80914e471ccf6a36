// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for the game service.
package middleware
