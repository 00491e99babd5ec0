package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frame rate (frames per second, default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended (lost or won)
	Won      bool // Whether the game ended in victory
	Paused   bool // Whether the game is paused

	Fruits  int     // Pickups collected this run
	Lives   int     // Lives remaining
	Elapsed float64 // Simulated seconds of play since the last reset
}

// Event is a notable thing that happened during a tick, shaped for
// structured loggers: a short name plus alternating key/value pairs.
type Event struct {
	Name    string
	KeyVals []any
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
