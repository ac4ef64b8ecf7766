package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	prefixGame     = "game:"
)

// ErrNotFound is returned when a saved game does not exist.
var ErrNotFound = errors.New("not found")

// GameMode represents the game mode
type GameMode int

const (
	ModeHumanVsHuman GameMode = iota
	ModeHumanVsComputer
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username         string      `json:"username"`
	Difficulty       string      `json:"difficulty"`
	GameMode         GameMode    `json:"game_mode"`
	PlayerColor      board.Color `json:"player_color"`
	ShowDestinations bool        `json:"show_destinations"`
	LastGameID       string      `json:"last_game_id"`
	LastPlayed       time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:         "Player",
		Difficulty:       "medium",
		GameMode:         ModeHumanVsComputer,
		PlayerColor:      board.White,
		ShowDestinations: true,
		LastPlayed:       time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int           `json:"games_played"`
	Wins           int           `json:"wins"`
	Losses         int           `json:"losses"`
	Unfinished     int           `json:"unfinished"`
	MovesPlayed    int           `json:"moves_played"`
	MaterialWon    int           `json:"material_won"`
	TotalPlayTime  time.Duration `json:"total_play_time"`
	LongestWinStrk int           `json:"longest_win_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// GameResult represents the outcome of a game from the human's side
type GameResult struct {
	Won      bool
	Finished bool
	Moves    int
	Captured int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens a database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value at key into v. A missing key leaves v untouched and
// returns badger.ErrKeyNotFound.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if err := s.get(keyPreferences, prefs); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return prefs, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	if err := s.get(keyStats, stats); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return stats, err
	}
	return stats, nil
}

// RecordGame records a game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.MovesPlayed += result.Moves
	stats.MaterialWon += result.Captured
	stats.TotalPlayTime += result.Duration

	switch {
	case !result.Finished:
		stats.Unfinished++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate of finished games as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	finished := s.Wins + s.Losses
	if finished == 0 {
		return 0
	}
	return float64(s.Wins) / float64(finished) * 100
}

// SaveGame stores a game snapshot under id.
func (s *Storage) SaveGame(id string, snap game.Snapshot) error {
	if err := s.put(prefixGame+id, snap); err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	return nil
}

// LoadGame returns the snapshot stored under id, or ErrNotFound.
func (s *Storage) LoadGame(id string) (game.Snapshot, error) {
	var snap game.Snapshot
	err := s.get(prefixGame+id, &snap)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return snap, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("load game %s: %w", id, err)
	}
	return snap, nil
}

// DeleteGame removes a stored game. Deleting a missing game is not an error.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixGame + id))
	})
}

// ListGames returns the ids of all stored games in key order.
func (s *Storage) ListGames() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), prefixGame))
		}
		return nil
	})
	return ids, err
}
