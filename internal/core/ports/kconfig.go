package ports

// Kconfig reads Kconfig fragments and generated configurations.
//
//go:generate go run go.uber.org/mock/mockgen -source=kconfig.go -destination=mocks/mock_kconfig.go -package=mocks
type Kconfig interface {
	// Fragment returns the directive lines of a fragment, and false when it does not exist.
	Fragment(path string) ([]string, bool, error)

	// Missing returns the required lines absent from the generated configuration.
	Missing(configPath string, required []string) ([]string, error)

	// WriteFragment writes directive lines to path.
	WriteFragment(path string, lines []string) error
}
