// Package reportfmt renders check results for the terminal and as JSON.
package reportfmt
