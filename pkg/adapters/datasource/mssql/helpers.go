package mssql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// quoteName returns a SQL Server quoted identifier: [name]
// Square brackets inside the identifier are escaped as ]]
func quoteName(identifier string) string {
	escaped := strings.ReplaceAll(identifier, "]", "]]")
	return fmt.Sprintf("[%s]", escaped)
}

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// convertPlaceholders converts positional parameters ($1, $2, ...) to
// SQL Server named parameters (@p1, @p2, ...)
func convertPlaceholders(clause string) string {
	return placeholderPattern.ReplaceAllStringFunc(clause, func(match string) string {
		num, err := strconv.Atoi(match[1:])
		if err != nil {
			return match // Return unchanged if parsing fails
		}
		return fmt.Sprintf("@p%d", num)
	})
}

// isStringType returns true if the type is a string type in SQL Server.
func isStringType(sqlType string) bool {
	sqlType = strings.ToUpper(sqlType)
	stringTypes := []string{
		"CHAR", "NCHAR", "VARCHAR", "NVARCHAR",
		"TEXT", "NTEXT",
	}

	for _, t := range stringTypes {
		if sqlType == t {
			return true
		}
	}
	return false
}
