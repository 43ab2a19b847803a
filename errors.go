package town

import "errors"

var (
	// ErrDegenerateCamera is returned by NewCamera when the configuration
	// cannot produce an invertible projection.
	ErrDegenerateCamera = errors.New("town: degenerate camera configuration")

	// ErrUnknownAgent is returned when an update names a character that is
	// not in the scene.
	ErrUnknownAgent = errors.New("town: unknown agent")

	// ErrUnknownBuilding is returned when an update targets a building that
	// is not in the scene.
	ErrUnknownBuilding = errors.New("town: unknown building")

	// ErrMoveSuperseded settles a MoveHandle whose movement was replaced by a
	// newer MoveTo on the same character.
	ErrMoveSuperseded = errors.New("town: move superseded")

	// ErrMoveCancelled settles a MoveHandle cancelled explicitly or by a teleport.
	ErrMoveCancelled = errors.New("town: move cancelled")

	// ErrInvalidScene wraps every SceneConfig validation failure.
	ErrInvalidScene = errors.New("town: invalid scene configuration")

	// ErrInvalidUpdate is returned for a controller update that cannot be
	// applied as given, such as a move with no target.
	ErrInvalidUpdate = errors.New("town: invalid update")
)
