// Package report renders scan reports for terminals, files, and tool
// integration.
package report
