package ports

import "go.trai.ch/zsb/internal/core/domain"

// BoardIndex discovers board definitions in a source tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=boards.go -destination=mocks/mock_boards.go -package=mocks
type BoardIndex interface {
	// Scan walks boardsRoot and returns every buildable board not excluded.
	// The result is sorted by identifier.
	Scan(boardsRoot string, exclude domain.Exclusions) ([]domain.BoardEntry, error)

	// Lookup finds the descriptor of identifier inside boardDir.
	Lookup(boardDir, identifier string) (domain.BoardEntry, error)
}
