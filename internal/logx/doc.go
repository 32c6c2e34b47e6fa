// Package logx configures doppler's structured logging.
//
// Console output is the zerolog console writer with a short timestamp;
// JSON output keeps every field structured for machine consumption.
package logx
