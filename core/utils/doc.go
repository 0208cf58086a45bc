// Package utils holds small conversion helpers shared by packages that
// decode loosely typed documents.
package utils
