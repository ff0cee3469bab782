// export_test.go exports private functions for white-box testing.
package logger

// Exported for tests.
var (
	CollectErrorChain = collectErrorChain
	FormatErrorChain  = formatErrorChain
)
