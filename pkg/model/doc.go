// Package model defines the values that cross component boundaries: the
// ordered Record a form accumulates and the Envelope submitted to the remote
// API.
package model
