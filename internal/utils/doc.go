// Package utils provides shared utility functions.
package utils
